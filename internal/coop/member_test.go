package coop

import (
	"errors"
	"testing"
)

func newMember(t *testing.T, name, id string) *Member {
	t.Helper()
	m, err := NewMember(name, id)
	if err != nil {
		t.Fatalf("NewMember(%s, %s): %v", name, id, err)
	}
	return m
}

func TestNewMemberValidation(t *testing.T) {
	for _, tc := range []struct{ name, id string }{
		{"", "1001"},
		{"   ", "1001"},
		{"Ana Gómez", ""},
		{"Ana Gómez", "  "},
	} {
		if _, err := NewMember(tc.name, tc.id); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("NewMember(%q, %q): want ErrInvalidArgument, got %v", tc.name, tc.id, err)
		}
	}
}

func TestAddAccountDuplicateAtMemberScope(t *testing.T) {
	carlos := newMember(t, "Carlos Pérez", "1002")
	if err := carlos.AddAccount(newSavings(t, "AH-1002-1", 200000, "0.03")); err != nil {
		t.Fatal(err)
	}
	if err := carlos.AddAccount(newSavings(t, "AH-1002-2", 400000, "0.03")); err != nil {
		t.Fatal(err)
	}

	err := carlos.AddAccount(newSavings(t, "AH-1002-1", 0, "0.01"))
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("want ErrDuplicateAccount, got %v", err)
	}
	if carlos.AccountCount() != 2 {
		t.Fatalf("account count=%d want=2", carlos.AccountCount())
	}
}

func TestAddAccountNil(t *testing.T) {
	m := newMember(t, "Ana Gómez", "1001")
	if err := m.AddAccount(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestMemberTotalBalance(t *testing.T) {
	m := newMember(t, "Carlos Pérez", "1002")
	if !m.TotalBalance().IsZero() {
		t.Fatalf("empty member total=%s want=0", m.TotalBalance())
	}
	_ = m.AddAccount(newBase(t, "C-1", 200000))
	_ = m.AddAccount(newSavings(t, "AH-1", 400000, "0.03"))
	if got := m.TotalBalance(); !got.Equal(d(600000)) {
		t.Fatalf("total=%s want=600000", got)
	}
}

func TestMemberEqualityByID(t *testing.T) {
	a := newMember(t, "Carlos Pérez", "1002")
	b := newMember(t, "C. Pérez", "1002")
	c := newMember(t, "Carlos Pérez", "1003")

	if !a.Equal(b) {
		t.Fatal("members with the same id number should be equal")
	}
	if a.Equal(c) {
		t.Fatal("members with different id numbers should not be equal")
	}
	if a.Equal(nil) {
		t.Fatal("nil is never equal")
	}
}

func TestHoldsAccount(t *testing.T) {
	m := newMember(t, "Ana Gómez", "1001")
	_ = m.AddAccount(newSavings(t, "AH-1001-1", 600000, "0.02"))
	if !m.HoldsAccount("AH-1001-1") {
		t.Fatal("member should hold AH-1001-1")
	}
	if m.HoldsAccount("AH-9999-9") {
		t.Fatal("member should not hold AH-9999-9")
	}
}
