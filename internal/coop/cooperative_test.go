package coop

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func newCoop(t *testing.T) *Cooperative {
	t.Helper()
	c, err := New("Cooperativa Central", "900123456-7")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewCooperativeValidation(t *testing.T) {
	if _, err := New("", "900123456-7"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty name: want ErrInvalidArgument, got %v", err)
	}
	if _, err := New("Cooperativa Central", " "); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("blank tax id: want ErrInvalidArgument, got %v", err)
	}
}

func TestRegisterDuplicateMember(t *testing.T) {
	c := newCoop(t)
	if err := c.RegisterMember(newMember(t, "Ana Gómez", "1001")); err != nil {
		t.Fatal(err)
	}
	err := c.RegisterMember(newMember(t, "Another Ana", "1001"))
	if !errors.Is(err, ErrDuplicateMember) {
		t.Fatalf("want ErrDuplicateMember, got %v", err)
	}
	if c.MemberCount() != 1 {
		t.Fatalf("member count=%d want=1", c.MemberCount())
	}
	got, ok := c.FindMemberByID("1001")
	if !ok || got.FullName() != "Ana Gómez" {
		t.Fatalf("registry should keep the first registration, got %v ok=%v", got, ok)
	}
}

func TestRegisterDuplicateAccount(t *testing.T) {
	c := newCoop(t)
	first := newBase(t, "C-1", 100)
	if err := c.RegisterAccount(first); err != nil {
		t.Fatal(err)
	}
	err := c.RegisterAccount(newBase(t, "C-1", 999))
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("want ErrDuplicateAccount, got %v", err)
	}
	got, ok := c.FindAccountByNumber("C-1")
	if !ok || !got.Balance().Equal(d(100)) {
		t.Fatalf("only the first account should be retrievable, got %v ok=%v", got, ok)
	}
	if c.AccountCount() != 1 {
		t.Fatalf("account count=%d want=1", c.AccountCount())
	}
}

func TestRegisterNil(t *testing.T) {
	c := newCoop(t)
	if err := c.RegisterMember(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
	if err := c.RegisterAccount(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestFindAbsent(t *testing.T) {
	c := newCoop(t)
	if _, ok := c.FindMemberByID("missing"); ok {
		t.Fatal("absent member lookup should report not found")
	}
	if _, ok := c.FindAccountByNumber("missing"); ok {
		t.Fatal("absent account lookup should report not found")
	}
}

func TestAccountsAboveBalanceAndTotal(t *testing.T) {
	c := newCoop(t)
	for i, balance := range []int64{600000, 200000, 800000} {
		if err := c.RegisterAccount(newBase(t, fmt.Sprintf("C-%d", i+1), balance)); err != nil {
			t.Fatal(err)
		}
	}

	above := c.AccountsAboveBalance(d(500000))
	if len(above) != 2 {
		t.Fatalf("len=%d want=2", len(above))
	}
	if !above[0].Balance().Equal(d(800000)) || !above[1].Balance().Equal(d(600000)) {
		t.Fatalf("want [800000 600000], got [%s %s]", above[0].Balance(), above[1].Balance())
	}
	if got := c.TotalBalance(); !got.Equal(d(1600000)) {
		t.Fatalf("total=%s want=1600000", got)
	}
}

func TestAccountsAboveBalanceTiesKeepRegistrationOrder(t *testing.T) {
	c := newCoop(t)
	_ = c.RegisterAccount(newBase(t, "C-1", 700000))
	_ = c.RegisterAccount(newBase(t, "C-2", 700000))
	_ = c.RegisterAccount(newBase(t, "C-3", 900000))

	above := c.AccountsAboveBalance(d(500000))
	want := []string{"C-3", "C-1", "C-2"}
	for i, number := range want {
		if above[i].Number() != number {
			t.Fatalf("position %d: got %s want %s", i, above[i].Number(), number)
		}
	}
}

func TestApplyInterestToSavings(t *testing.T) {
	c := newCoop(t)
	base := newBase(t, "C-1", 100000)
	savings := newSavings(t, "AH-1", 600000, "0.02")
	_ = c.RegisterAccount(base)
	_ = c.RegisterAccount(savings)
	_ = c.RegisterAccount(newSavings(t, "AH-2", 200000, "0.03"))

	if affected := c.ApplyInterestToSavings(); affected != 2 {
		t.Fatalf("affected=%d want=2", affected)
	}
	wantBalance(t, base, 100000)
	wantBalance(t, savings, 612000)
}

func TestOwnerOf(t *testing.T) {
	c := newCoop(t)
	ana := newMember(t, "Ana Gómez", "1001")
	account := newSavings(t, "AH-1001-1", 600000, "0.02")
	_ = c.RegisterMember(ana)
	_ = ana.AddAccount(account)
	_ = c.RegisterAccount(account)

	// Registered at cooperative scope but attached to no member.
	orphan := newBase(t, "C-9", 1000)
	_ = c.RegisterAccount(orphan)

	owner, ok := c.OwnerOf("AH-1001-1")
	if !ok || !owner.Equal(ana) {
		t.Fatalf("owner=%v ok=%v want Ana", owner, ok)
	}
	if _, ok := c.OwnerOf("C-9"); ok {
		t.Fatal("unowned account should have no owner")
	}
}

func TestConcurrentRegistrationAndReads(t *testing.T) {
	c := newCoop(t)

	const n = 50
	accounts := make([]*BaseAccount, n)
	for i := range accounts {
		accounts[i] = newBase(t, fmt.Sprintf("C-%d", i), 10)
	}

	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if err := c.RegisterAccount(accounts[i]); err != nil {
				t.Errorf("register: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			_ = c.Accounts()
			_ = c.TotalBalance()
		}()
	}
	wg.Wait()

	if c.AccountCount() != n {
		t.Fatalf("account count=%d want=%d", c.AccountCount(), n)
	}
	if got := c.TotalBalance(); !got.Equal(d(n * 10)) {
		t.Fatalf("total=%s want=%d", got, n*10)
	}
}
