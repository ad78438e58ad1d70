package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/weavetest/assert"
)

func TestAuth(t *testing.T) {
	main, second, third := NewCondition(), NewCondition(), NewCondition()

	cases := map[string]struct {
		auth Auth
		want []weave.Condition
	}{
		"nobody": {
			auth: Auth{},
			want: nil,
		},
		"signer only": {
			auth: Auth{Signer: main},
			want: []weave.Condition{main},
		},
		"signers only": {
			auth: Auth{Signers: []weave.Condition{second, third}},
			want: []weave.Condition{second, third},
		},
		"signer goes first": {
			auth: Auth{Signer: main, Signers: []weave.Condition{second, third}},
			want: []weave.Condition{main, second, third},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := tc.auth.GetConditions(context.Background())
			assert.Equal(t, tc.want, got)
			for _, c := range tc.want {
				if !tc.auth.HasAddress(context.Background(), c.Address()) {
					t.Fatalf("%s must be authenticated", c)
				}
			}
			if tc.auth.HasAddress(context.Background(), NewCondition().Address()) {
				t.Fatal("random condition must not be authenticated")
			}
		})
	}
}

func TestCtxAuth(t *testing.T) {
	a := CtxAuth{Key: "auth"}
	conds := []weave.Condition{NewCondition(), NewCondition()}

	ctx := context.Background()
	assert.Nil(t, a.GetConditions(ctx))

	ctx = a.SetConditions(ctx, conds...)
	assert.Equal(t, conds, a.GetConditions(ctx))
	for _, c := range conds {
		if !a.HasAddress(ctx, c.Address()) {
			t.Fatalf("%s must be authenticated", c)
		}
	}

	other := CtxAuth{Key: "other"}
	assert.Nil(t, other.GetConditions(ctx))

	assert.Panics(t, func() {
		a.GetConditions(context.WithValue(ctx, "auth", "not conditions"))
	})
}

func TestRandomAddr(t *testing.T) {
	a, b := RandomAddr(t), RandomAddr(t)
	assert.Nil(t, a.Validate())
	if a.Equals(b) {
		t.Fatal("random addresses must differ")
	}
}
