package types

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Float_UsesMillisecondsForInstants(t *testing.T) {
	v := TimeValue(time.Date(1970, 1, 1, 0, 0, 1, 500000, time.UTC))
	assert.True(t, v.IsTime())
	assert.InDelta(t, 1000.5, v.Float(), 1e-9)

	n := NumberValue(42)
	assert.False(t, n.IsTime())
	assert.Equal(t, 42.0, n.Float())
}

func TestTimeValue_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	v := TimeValue(time.Date(2020, 1, 1, 3, 0, 0, 0, loc))
	assert.Equal(t, time.UTC, v.Time().Location())
	assert.Equal(t, 0, v.Time().Hour())
}

func TestBlockError_MessageAndUnwrap(t *testing.T) {
	cause := &strconv.NumError{Func: "ParseFloat", Num: "abc", Err: strconv.ErrSyntax}
	err := fmt.Errorf("block 1: %w", ValueParse(3, cause, "column %q", "a"))

	var blockErr *BlockError
	require.True(t, errors.As(err, &blockErr))
	assert.Equal(t, ValueParseError, blockErr.Kind)
	assert.Equal(t, 3, blockErr.Line)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.Contains(t, blockErr.Error(), "value-parse")
	assert.Contains(t, blockErr.Error(), "line 3")

	assert.Equal(t, "structural: need 2 lines", Structural("need %d lines", 2).Error())
	assert.Equal(t, FormatDetectionError, Detection("no match").Kind)
}
