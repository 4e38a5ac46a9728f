package guardian_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/guardian-alert-service/pkg/auth"
	"liyu1981.xyz/guardian-alert-service/pkg/db"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
	pushmocks "liyu1981.xyz/guardian-alert-service/pkg/push/mocks"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func singapore(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)
	return loc
}

func testVerifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier(testSecret, "HS256")
	require.NoError(t, err)
	return v
}

func GetMockGuardianWithMemorySqliteDialector(t *testing.T, opts guardian.Options) (
	*gomock.Controller,
	*guardian.Guardian,
	*pushmocks.MockProvider,
) {
	ctrl := gomock.NewController(t)

	dbInstance, err := db.New(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })

	if opts.Location == nil {
		opts.Location = singapore(t)
	}

	mockPush := pushmocks.NewMockProvider(ctrl)
	g := guardian.New(dbInstance, opts, testVerifier(t), mockPush)

	return ctrl, g, mockPush
}

// seedFamily creates a monitored person, its caretaker and the caretaker's
// registered devices.
func seedFamily(t *testing.T, g *guardian.Guardian, personID, caretakerID string, tokens ...string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, g.Directory.UpsertUser(ctx, &models.User{ID: caretakerID, Name: "Carer " + caretakerID, Role: models.UserRoleCaretaker}))
	carer := caretakerID
	require.NoError(t, g.Directory.UpsertUser(ctx, &models.User{ID: personID, Name: "Person " + personID, Role: models.UserRoleElderly, CaretakerID: &carer}))

	for _, token := range tokens {
		_, err := g.Devices.Register(ctx, caretakerID, token, models.PlatformAndroid)
		require.NoError(t, err)
	}
}

func tokensOf(t *testing.T, g *guardian.Guardian, userID string) []string {
	t.Helper()
	devices, err := g.Devices.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	out := make([]string, 0, len(devices))
	for _, d := range devices {
		out = append(out, d.Token)
	}
	return out
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func findLog(logs []any, msg string) map[string]any {
	for _, l := range logs {
		entry, ok := l.(map[string]any)
		if ok && entry["msg"] == msg {
			return entry
		}
	}
	return nil
}
