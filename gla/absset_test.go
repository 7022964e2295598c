package gla

import "testing"

func TestAbsSet_NewContainsConst0(t *testing.T) {
	s := NewAbsSet()
	if !s.Contains(0) {
		t.Error("new abstraction set must contain const-0")
	}
	if s.Size() != 1 {
		t.Errorf("expected size 1, got %d", s.Size())
	}
}

func TestAbsSet_AddIsIdempotent(t *testing.T) {
	s := NewAbsSet()
	s.Add(5)
	s.Add(5)
	s.Add(5)
	if s.Size() != 2 {
		t.Errorf("expected size 2 after duplicate adds, got %d", s.Size())
	}
	if len(s.List()) != 2 {
		t.Errorf("expected list length 2, got %d", len(s.List()))
	}
}

func TestAbsSet_RollbackTo(t *testing.T) {
	s := NewAbsSet()
	mark := s.Size()
	s.AddAll([]ObjID{1, 2, 3})
	if s.Size() != 4 {
		t.Fatalf("expected size 4, got %d", s.Size())
	}
	s.RollbackTo(mark)
	if s.Size() != mark {
		t.Errorf("expected size %d after rollback, got %d", mark, s.Size())
	}
	for _, id := range []ObjID{1, 2, 3} {
		if s.Contains(id) {
			t.Errorf("id %d should not be in set after rollback", id)
		}
	}
}

func TestAbsSet_ListOrderIsInsertionOrder(t *testing.T) {
	s := NewAbsSet()
	s.AddAll([]ObjID{7, 3, 9})
	list := s.List()
	want := []ObjID{0, 7, 3, 9}
	if len(list) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(list))
	}
	for i, id := range want {
		if list[i] != id {
			t.Errorf("position %d: expected %d, got %d", i, id, list[i])
		}
	}
}
