package v1

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestJSONCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestJSONCodec_PlainMessages(t *testing.T) {
	c := jsonCodec{}
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	in := &ListConversationsResponse{Conversations: []*ConversationSummary{
		{
			ConversationId: "u1_u2",
			Participants:   []string{"u1", "u2"},
			LatestMessage: &Message{
				MessageId: "m1",
				SenderId:  "u2",
				Text:      "hi",
				CreatedAt: timestamppb.New(created),
			},
		},
		{ConversationId: "u1_u3", Participants: []string{"u1", "u3"}},
	}}

	raw, err := c.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"conversation_id":"u1_u2"`)
	assert.Contains(t, string(raw), `"is_read":false`)

	var out ListConversationsResponse
	require.NoError(t, c.Unmarshal(raw, &out))
	require.Len(t, out.Conversations, 2)
	assert.Equal(t, "hi", out.Conversations[0].LatestMessage.Text)
	assert.True(t, out.Conversations[0].LatestMessage.CreatedAt.AsTime().Equal(created))
	assert.Nil(t, out.Conversations[1].LatestMessage)
}

func TestJSONCodec_ProtoMessages(t *testing.T) {
	c := jsonCodec{}

	raw, err := c.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))

	require.NoError(t, c.Unmarshal([]byte(`{"ignored":1}`), &emptypb.Empty{}))

	assert.Error(t, c.Unmarshal([]byte(`{`), &LoginRequest{}))
}

func TestGetters_NilSafe(t *testing.T) {
	var reg *RegisterRequest
	assert.Empty(t, reg.GetUserName())
	assert.Empty(t, reg.GetPassword())
	assert.Empty(t, reg.GetUserType())

	var list *ListMessagesRequest
	assert.Empty(t, list.GetConversationId())
	assert.Zero(t, list.GetLimit())

	send := &SendMessageRequest{RecipientId: "u2", Text: "hello"}
	assert.Equal(t, "u2", send.GetRecipientId())
	assert.Equal(t, "hello", send.GetText())
}

// echoServer answers Login and leaves everything else unimplemented.
type echoServer struct {
	UnimplementedChatServiceServer
}

func (echoServer) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	return &LoginResponse{Token: "token-for-" + req.GetUserName(), UserId: "id1"}, nil
}

func dialBuf(t *testing.T, srv ChatServiceServer, opts ...grpc.ServerOption) ChatServiceClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer(opts...)
	RegisterChatServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewChatServiceClient(conn)
}

func TestServiceDesc_RoundTrip(t *testing.T) {
	var seen string
	intercept := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}
	client := dialBuf(t, echoServer{}, grpc.UnaryInterceptor(intercept))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Login(ctx, &LoginRequest{UserName: "recruiter1", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "token-for-recruiter1", resp.Token)
	assert.Equal(t, ChatService_Login_FullMethodName, seen)

	_, err = client.GetMe(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.Unimplemented, status.Code(err))

	_, err = client.MarkMessagesRead(ctx, &MarkMessagesReadRequest{ConversationId: "u1_u2"})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestServiceDesc_MethodsMatchConstants(t *testing.T) {
	want := map[string]bool{
		ChatService_Register_FullMethodName:           true,
		ChatService_Login_FullMethodName:              true,
		ChatService_GetMe_FullMethodName:              true,
		ChatService_UpdateMe_FullMethodName:           true,
		ChatService_DeleteMe_FullMethodName:           true,
		ChatService_ListUsers_FullMethodName:          true,
		ChatService_CreateConversation_FullMethodName: true,
		ChatService_ListConversations_FullMethodName:  true,
		ChatService_SendMessage_FullMethodName:        true,
		ChatService_ListMessages_FullMethodName:       true,
		ChatService_MarkMessagesRead_FullMethodName:   true,
	}
	require.Len(t, ChatService_ServiceDesc.Methods, len(want))
	for _, m := range ChatService_ServiceDesc.Methods {
		full := "/" + ServiceName + "/" + m.MethodName
		assert.True(t, want[full], "unexpected method %s", full)
	}
}
