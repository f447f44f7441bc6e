package directory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// testDirectory runs the cases every backend must pass. Accounts get a random
// suffix so runs against a shared database do not collide.
func testDirectory(t *testing.T, d Directory) {
	ctx := context.Background()
	suffix := uuid.NewString()
	roki := User{Account: "roki-" + suffix, Password: "password", Email: "hkkang%40woowahan.com"}

	_, err := d.FindByAccount(ctx, roki.Account)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want %v", err, ErrUserNotFound)
	}

	if err := d.Save(ctx, roki); err != nil {
		t.Fatal(err)
	}
	u, err := d.FindByAccount(ctx, roki.Account)
	if err != nil {
		t.Fatal(err)
	}
	if u != roki {
		t.Errorf("got %v, want %v", u, roki)
	}

	err = d.Save(ctx, User{Account: roki.Account, Password: "other"})
	if errors.Cause(err) != ErrAlreadyRegistered {
		t.Errorf("got %v, want %v", err, ErrAlreadyRegistered)
	}
	u, _ = d.FindByAccount(ctx, roki.Account)
	if !u.CheckPassword("password") {
		t.Error("existing user was overwritten")
	}

	var wg sync.WaitGroup
	var saved int32
	dup := "dup-" + suffix
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if d.Save(ctx, User{Account: dup, Password: fmt.Sprint(i)}) == nil {
				atomic.AddInt32(&saved, 1)
			}
		}(i)
	}
	wg.Wait()
	if saved != 1 {
		t.Errorf("got %d successful saves, want 1", saved)
	}
}
