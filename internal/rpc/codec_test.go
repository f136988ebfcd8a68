package rpc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_LoginRecordOmitsOpenLogout(t *testing.T) {
	login := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b, err := Codec{}.Marshal(&LoginRecord{ID: 3, LoginTime: login})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"login_time":"2024-05-01T12:00:00Z"}`, string(b))

	var got LoginRecord
	require.NoError(t, Codec{}.Unmarshal(b, &got))
	assert.Nil(t, got.LogoutTime)
	assert.True(t, login.Equal(got.LoginTime))
}

func TestCodec_ProtoMessages(t *testing.T) {
	b, err := Codec{}.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
	require.NoError(t, Codec{}.Unmarshal(b, &emptypb.Empty{}))

	b, err = Codec{}.Marshal(wrapperspb.String("dawg"))
	require.NoError(t, err)
	assert.JSONEq(t, `"dawg"`, string(b))

	got := &wrapperspb.StringValue{}
	require.NoError(t, Codec{}.Unmarshal(b, got))
	assert.Equal(t, "dawg", got.GetValue())
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/spellcheckd.v1.SpellService/Check", FullMethod("Check"))
	assert.Len(t, ServiceDesc.Methods, 7)
}
