package errors

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// customErr declares its own ABCI code without being registered.
type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil": {
			wantCode: SuccessABCICode,
		},
		"typed nil": {
			err:      (*Error)(nil),
			wantCode: SuccessABCICode,
		},
		"registered error": {
			err:      ErrNotFound,
			wantCode: ErrNotFound.code,
			wantLog:  "not found",
		},
		"wrapped registered error": {
			err:      Wrap(duplicateFactory(), "deploy"),
			wantCode: ErrDuplicate.code,
			wantLog:  "deploy: factory: duplicate",
		},
		"stdlib error is hidden": {
			err:      Wrap(io.EOF, "cannot read file"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"custom code": {
			err:      customErr{},
			debug:    true,
			wantCode: 999,
			wantLog:  "custom",
		},
		"stdlib error in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "EOF",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantLog, log)
		})
	}
}

// duplicateFactory creates the error in a separate frame.
func duplicateFactory() error {
	return ErrDuplicate.New("factory")
}

func TestABCIInfoDebugIncludesStack(t *testing.T) {
	code, log := ABCIInfo(Wrap(io.EOF, "cannot read file"), true)
	assert.Equal(t, internalABCICode, code)
	assert.True(t, strings.HasSuffix(log, "cannot read file: EOF"))
	assert.Contains(t, log, "abci_test.go")
}

func TestABCIError(t *testing.T) {
	err := ABCIError(ErrUnauthorized.code, "cannot deliver tx")
	assert.True(t, ErrUnauthorized.Is(err))
	assert.Equal(t, "cannot deliver tx: unauthorized", err.Error())

	unknown := ABCIError(424242, "something odd")
	assert.False(t, ErrUnauthorized.Is(unknown))
	code, _ := ABCIInfo(unknown, false)
	assert.Equal(t, uint32(424242), code)
}

func TestRedact(t *testing.T) {
	assert.False(t, ErrPanic.Is(Redact(ErrPanic.New("secret"), false)))
	assert.True(t, ErrPanic.Is(Redact(ErrPanic.New("secret"), true)))
	assert.True(t, ErrNotFound.Is(Redact(ErrNotFound.New("escrow"), false)))
	assert.Equal(t, internalABCILog, Redact(io.ErrUnexpectedEOF, false).Error())
	assert.Nil(t, Redact(nil, false))
}
