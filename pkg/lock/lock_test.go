package lock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t,
		[]string{"account:014/5301", "account:014/5302"},
		Keys(Account("014/5302"), Account("014/5301"), Account("014/5302"), Account("")),
	)
	assert.Empty(t, Keys())
}
