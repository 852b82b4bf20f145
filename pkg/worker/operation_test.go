package worker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperationString(t *testing.T) {

	require.Equal(t, "unknown", OpUnknown.String())
	require.Equal(t, "subscribe", OpSubscribe.String())
	require.Equal(t, "unsubscribe", OpUnsubscribe.String())
	require.Equal(t, "invalid topic operation: 100", Operation(100).String())
}

func TestOperationByString(t *testing.T) {

	require.Equal(t, OpSubscribe, OperationByString("subscribe"))
	require.Equal(t, OpUnsubscribe, OperationByString("unsubscribe"))
	require.Equal(t, OpUnknown, OperationByString("unknown"))
	require.Equal(t, OpUnknown, OperationByString("invalid"))
	require.Equal(t, OpUnknown, OperationByString(""))
}

func TestOperationStringKeys(t *testing.T) {

	keys := OperationStringKeys()
	require.Len(t, keys, 3)
	require.Contains(t, keys, "subscribe")
	require.Contains(t, keys, "unsubscribe")
	require.Contains(t, keys, "unknown")
}
