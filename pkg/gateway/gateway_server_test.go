package gateway

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"liyu1981.xyz/guardian-alert-service/pkg/auth"
	"liyu1981.xyz/guardian-alert-service/pkg/common"
	"liyu1981.xyz/guardian-alert-service/pkg/db"
	gatewaymocks "liyu1981.xyz/guardian-alert-service/pkg/gateway/mocks"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian/mocks"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
	pushmocks "liyu1981.xyz/guardian-alert-service/pkg/push/mocks"
	_ "liyu1981.xyz/guardian-alert-service/pkg/testing"
)

const bufSize = 1024 * 1024

const testSecret = "gateway-test-secret-at-least-32-characters"

func startTestServer(t *testing.T, gs *GatewayServer) *Client {
	t.Helper()
	listener := bufconn.Listen(bufSize)

	interceptor := grpc.UnaryInterceptor(gs.CreateRateLimitInterceptor([]string{ReportStatusMethod}))
	server := grpc.NewServer(interceptor)
	RegisterGatewayServer(server, gs)

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn)
}

func TestReportFall_EndToEnd(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	database, err := db.New(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	verifier, err := auth.NewVerifier(testSecret, "HS256")
	require.NoError(t, err)

	mockPush := pushmocks.NewMockProvider(ctrl)
	g := guardian.New(database, guardian.Options{}, verifier, mockPush)

	carer := "c1"
	require.NoError(t, g.Directory.UpsertUser(ctx, &models.User{ID: "c1", Name: "Carer", Role: models.UserRoleCaretaker}))
	require.NoError(t, g.Directory.UpsertUser(ctx, &models.User{ID: "p1", Name: "Ada", Role: models.UserRoleElderly, CaretakerID: &carer}))
	_, err = g.Devices.Register(ctx, "c1", "tA", models.PlatformIOS)
	require.NoError(t, err)

	alerter := gatewaymocks.NewMockAlerter(ctrl)
	alerter.EXPECT().Alert(gomock.Any(), "p1", gomock.Any()).Times(1)
	mockPush.EXPECT().Send(gomock.Any(), "tA", gomock.Any()).Return("msg-1", nil).Times(1)

	client := startTestServer(t, &GatewayServer{Pipeline: g.Pipeline, Alerter: alerter, Timeout: 5 * time.Second})

	token, err := verifier.Sign("p1", time.Minute)
	require.NoError(t, err)

	resp, err := client.ReportFall(ctx, map[string]any{
		"token":     token,
		"deviceId":  "m5-01",
		"timestamp": 1740790800000,
		"impact":    2.4,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusProcessed, resp["status"])
	assert.Equal(t, string(models.NotificationStatusDelivered), resp["outcome"])
	assert.NotEmpty(t, resp["notificationId"])
	assert.Equal(t, "2025-03-01", resp["checkInDay"])
	assert.NotZero(t, resp["checkInId"])

	var stored models.Notification
	require.NoError(t, database.Conn.First(&stored, "id = ?", resp["notificationId"]).Error)
	assert.Equal(t, guardian.SourceGateway, stored.Data["source"])
	assert.Equal(t, "m5-01", stored.Data["deviceId"])
}

func TestReportFall_Unauthenticated(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)

	pipeline := mocks.NewMockIPipeline(ctrl)
	alerter := gatewaymocks.NewMockAlerter(ctrl)
	client := startTestServer(t, &GatewayServer{Pipeline: pipeline, Alerter: alerter})

	pipeline.EXPECT().VerifyFall(gomock.Any(), gomock.Any()).
		Return("", guardian.ErrAuthInvalid).Times(1)

	_, err := client.ReportFall(context.Background(), map[string]any{"token": "forged", "deviceId": "m5-01"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestReportFall_InvalidArgument(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)

	// no expectations: invalid reports never reach the pipeline
	pipeline := mocks.NewMockIPipeline(ctrl)
	client := startTestServer(t, &GatewayServer{Pipeline: pipeline})

	_, err := client.ReportFall(context.Background(), map[string]any{"deviceId": "m5-01"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.ReportFall(context.Background(), map[string]any{"token": "t", "location": "kitchen"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestReportFall_Outcomes(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)

	pipeline := mocks.NewMockIPipeline(ctrl)
	client := startTestServer(t, &GatewayServer{Pipeline: pipeline})

	pipeline.EXPECT().VerifyFall(gomock.Any(), gomock.Any()).Return("p1", nil).Times(3)

	gomock.InOrder(
		pipeline.EXPECT().ProcessFall(gomock.Any(), "p1", gomock.Any()).
			DoAndReturn(func(ctx context.Context, personID string, event guardian.FallEvent) (*guardian.FallReport, error) {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				assert.Equal(t, guardian.SourceGateway, event.Source)
				return &guardian.FallReport{
					PersonID: "p1",
					CheckIn:  &guardian.CheckInRef{ID: 7, Day: "2025-03-01"},
					Skipped:  guardian.ErrNoCaretakerAssigned,
				}, nil
			}),
		pipeline.EXPECT().ProcessFall(gomock.Any(), "p1", gomock.Any()).
			Return(&guardian.FallReport{
				PersonID:     "p1",
				Notification: "n-1",
				Result: &guardian.DispatchResult{
					NotificationID: "n-1",
					Outcome:        models.NotificationStatusFailed,
					Reason:         guardian.ReasonNoTokens,
				},
			}, errors.New("record fall check-in: disk full")),
		pipeline.EXPECT().ProcessFall(gomock.Any(), "p1", gomock.Any()).
			Return(nil, errors.New("resolve recipients: database is locked")),
	)

	resp, err := client.ReportFall(context.Background(), map[string]any{"token": "t"})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, resp["status"])
	assert.Equal(t, float64(7), resp["checkInId"])
	assert.Contains(t, resp["skipped"], "caretaker")

	resp, err = client.ReportFall(context.Background(), map[string]any{"token": "t"})
	require.NoError(t, err)
	assert.Equal(t, StatusDegraded, resp["status"])
	assert.Equal(t, string(models.NotificationStatusFailed), resp["outcome"])
	assert.Equal(t, guardian.ReasonNoTokens, resp["reason"])
	assert.Nil(t, resp["checkInId"])

	_, err = client.ReportFall(context.Background(), map[string]any{"token": "t"})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestReportStatus_RateLimited(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)

	pipeline := mocks.NewMockIPipeline(ctrl)
	client := startTestServer(t, &GatewayServer{
		Pipeline:         pipeline,
		RateLimiterStore: guardian.NewRateLimiterStore(rate.Limit(0.001), 1),
	})
	ctx := context.Background()

	pipeline.EXPECT().HandleStatus(gomock.Any(), "m5-01", gomock.Any()).
		DoAndReturn(func(ctx context.Context, deviceID string, event guardian.StatusEvent) error {
			require.NotNil(t, event.BatteryLevel)
			assert.Equal(t, 64.0, *event.BatteryLevel)
			return nil
		}).Times(1)

	resp, err := client.ReportStatus(ctx, map[string]any{"deviceId": "m5-01", "batteryLevel": 64})
	require.NoError(t, err)
	assert.Equal(t, StatusRecorded, resp["status"])

	_, err = client.ReportStatus(ctx, map[string]any{"deviceId": "m5-01", "batteryLevel": 63})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	// fall reports are never throttled
	pipeline.EXPECT().VerifyFall(gomock.Any(), gomock.Any()).Return("", guardian.ErrAuthInvalid).Times(2)
	for range 2 {
		_, err = client.ReportFall(ctx, map[string]any{"token": "t", "deviceId": "m5-01"})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	}

	_, err = client.ReportStatus(ctx, map[string]any{"batteryLevel": 10})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
