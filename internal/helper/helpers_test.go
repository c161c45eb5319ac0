package helper_test

import (
	"errors"
	"testing"

	"github.com/on-the-ground/modelhelpers/internal/helper"
	"github.com/stretchr/testify/assert"
)

func TestGetTypedValueOf(t *testing.T) {
	v, err := helper.GetTypedValueOf[int](func() (any, error) { return 7, nil })
	assert.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = helper.GetTypedValueOf[string](func() (any, error) { return 7, nil })
	assert.ErrorIs(t, err, helper.ErrUnexpectedType)

	boom := errors.New("boom")
	_, err = helper.GetTypedValueOf[int](func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestMustGetTypedValuePanics(t *testing.T) {
	assert.Panics(t, func() {
		helper.MustGetTypedValue[string](func() (any, error) { return 1, nil })
	})
}

func TestRetry(t *testing.T) {
	calls := 0
	err := helper.Retry(3, func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = helper.Retry(3, func() error {
		calls++
		return errors.New("permanent")
	})
	assert.ErrorIs(t, err, helper.ErrMaxAttempts)
	assert.Equal(t, 3, calls)
}
