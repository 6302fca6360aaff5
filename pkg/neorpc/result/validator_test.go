package result

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatorUnmarshalJSON(t *testing.T) {
	var v Validator
	require.NoError(t, json.Unmarshal([]byte(`{"publickey":"03aa","votes":"100500","active":true}`), &v))
	require.Equal(t, int64(100500), v.Votes)
	require.True(t, v.Active)

	require.NoError(t, json.Unmarshal([]byte(`{"publickey":"03aa","votes":42,"active":false}`), &v))
	require.Equal(t, int64(42), v.Votes)
	require.False(t, v.Active)

	require.Error(t, json.Unmarshal([]byte(`{"publickey":"03aa","votes":"abc","active":false}`), &v))
}

func TestValidatorMarshalJSON(t *testing.T) {
	v := Validator{PublicKey: "03aa", Votes: 100500, Active: true}
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"publickey":"03aa","votes":"100500","active":true}`, string(data))
}
