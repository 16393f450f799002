package utils_test

import (
	"strings"
	"testing"

	"github.com/SscSPs/p2p_ledger/internal/apperrors"
	"github.com/SscSPs/p2p_ledger/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("correct horse", hash))
	assert.False(t, utils.CheckPasswordHash("wrong horse", hash))
	assert.False(t, utils.CheckPasswordHash("correct horse", ""))

	_, err = utils.HashPassword(strings.Repeat("p", 73))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
