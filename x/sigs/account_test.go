package sigs

import (
	"testing"

	"github.com/iov-one/escrowd/crypto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountLifecycle(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	obj, err := bucket.Get(db, pub.Address())
	require.NoError(t, err)
	assert.Nil(t, obj)
	nonce, err := NextNonce(db, pub.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), nonce)

	obj, err = bucket.GetOrCreate(db, pub)
	require.NoError(t, err)
	require.NoError(t, obj.Validate())
	user := AsUser(obj)
	assert.Equal(t, pub, user.Pubkey)

	assert.True(t, ErrInvalidSequence.Is(user.CheckAndIncrementSequence(5)))
	require.NoError(t, user.CheckAndIncrementSequence(0))
	assert.True(t, ErrInvalidSequence.Is(user.CheckAndIncrementSequence(0)))
	require.NoError(t, user.CheckAndIncrementSequence(1))

	// Nothing is persisted until saved.
	nonce, err = NextNonce(db, pub.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), nonce)

	require.NoError(t, bucket.Save(db, obj))
	nonce, err = NextNonce(db, pub.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), nonce)

	loaded, err := bucket.GetOrCreate(db, pub)
	require.NoError(t, err)
	assert.Equal(t, user, AsUser(loaded))
}

func TestUserDataValidate(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	// A stored account must have a key.
	assert.Error(t, NewUser(nil).Validate())
	assert.NoError(t, NewUser(pub).Validate())

	cases := map[string]struct {
		user    *UserData
		wantErr *errors.Error
	}{
		"fresh account": {
			user: &UserData{Metadata: metadata(), Sequence: 0},
		},
		"used account": {
			user: &UserData{Metadata: metadata(), Pubkey: pub, Sequence: 17},
		},
		"negative sequence": {
			user:    &UserData{Metadata: metadata(), Pubkey: pub, Sequence: -30},
			wantErr: ErrInvalidSequence,
		},
		"sequence without key": {
			user:    &UserData{Metadata: metadata(), Sequence: 3},
			wantErr: ErrInvalidSequence,
		},
		"missing metadata": {
			user:    &UserData{Pubkey: pub},
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.user.Validate()
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

func TestUserDataCopy(t *testing.T) {
	u := &UserData{Metadata: metadata(), Pubkey: crypto.GenPrivKeyEd25519().PublicKey(), Sequence: 4}
	cp := u.Copy().(*UserData)
	assert.Equal(t, u, cp)
	cp.Sequence++
	cp.Metadata.Schema = 7
	assert.Equal(t, int64(4), u.Sequence)
	assert.Equal(t, uint32(1), u.Metadata.Schema)
}

func TestSequenceOverflow(t *testing.T) {
	u := &UserData{Sequence: maxSequenceValue}
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence(maxSequenceValue)))
	assert.Equal(t, int64(maxSequenceValue), u.Sequence)
}
