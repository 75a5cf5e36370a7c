package tui

import (
	"fmt"

	"github.com/idilsaglam/jottings/internal/model"
)

// stamped messages carry the navigation sequence they were issued under.
type stamped interface {
	navSeq() int
}

type itemsLoadedMsg struct {
	nav   int
	items []model.Item
	err   error
}

type itemAddedMsg struct {
	nav  int
	item model.Item
	err  error
}

type itemDeletedMsg struct {
	nav      int
	id       int64
	affected int64
	err      error
}

type itemSavedMsg struct {
	nav      int
	affected int64
	err      error
}

type itemRemovedMsg struct {
	nav      int
	affected int64
	err      error
}

func (m itemsLoadedMsg) navSeq() int { return m.nav }
func (m itemAddedMsg) navSeq() int   { return m.nav }
func (m itemDeletedMsg) navSeq() int { return m.nav }
func (m itemSavedMsg) navSeq() int   { return m.nav }
func (m itemRemovedMsg) navSeq() int { return m.nav }

func msgName(m any) string { return fmt.Sprintf("%T", m) }
