package state

import "testing"

func TestStore_SectionIndex(t *testing.T) {
	s := Store{}
	if _, ok := s.SectionIndex("tabs"); ok {
		t.Error("empty store should report no section index")
	}

	s.SetSectionIndex("tabs", 2)
	idx, ok := s.SectionIndex("tabs")
	if !ok || idx != 2 {
		t.Errorf("SectionIndex(tabs) = %d, %v, want 2, true", idx, ok)
	}

	// Indexes decoded from JSON arrive as float64
	s[SectionKey("decoded")] = float64(1)
	idx, ok = s.SectionIndex("decoded")
	if !ok || idx != 1 {
		t.Errorf("SectionIndex(decoded) = %d, %v, want 1, true", idx, ok)
	}
}

func TestStore_ProductSelection(t *testing.T) {
	s := Store{}
	s.SelectProduct("main", "premium_yearly")

	id, ok := s.SelectedProduct("main")
	if !ok || id != "premium_yearly" {
		t.Errorf("SelectedProduct(main) = %q, %v", id, ok)
	}

	s.UnselectProduct("main")
	if _, ok := s.SelectedProduct("main"); ok {
		t.Error("selection should be cleared after UnselectProduct")
	}
}

func TestStore_OpenedScreen(t *testing.T) {
	s := Store{}
	if s.OpenedScreen() != "" {
		t.Error("no screen should be open initially")
	}
	s.OpenScreen("terms")
	if s.OpenedScreen() != "terms" {
		t.Errorf("OpenedScreen() = %q, want terms", s.OpenedScreen())
	}
	s.CloseScreen()
	if s.OpenedScreen() != "" {
		t.Error("CloseScreen should clear the open screen")
	}
}

func TestStore_Clone(t *testing.T) {
	s := Store{"section_tabs": 1}
	c := s.Clone()
	c.SetSectionIndex("tabs", 5)
	if idx, _ := s.SectionIndex("tabs"); idx != 1 {
		t.Error("mutating a clone must not affect the original store")
	}
}
