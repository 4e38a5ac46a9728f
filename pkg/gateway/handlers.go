package gateway

import (
	"context"
	"encoding/json"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/guardian-alert-service/pkg/guardian"
)

const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
	StatusDegraded  = "degraded"
	StatusRecorded  = "recorded"
)

var fallReportSchema = z.Struct(z.Shape{
	"Token":    z.String().Min(1).Required(),
	"DeviceID": z.String().Max(128),
})

type statusReport struct {
	DeviceID string `json:"deviceId"`
	guardian.StatusEvent
}

var statusReportSchema = z.Struct(z.Shape{
	"DeviceID": z.String().Min(1).Max(128).Required(),
})

func decodeStruct(in *structpb.Struct, dst any) error {
	b, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func (s *GatewayServer) ReportFall(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var event guardian.FallEvent
	if err := decodeStruct(req, &event); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid fall report: %v", err)
	}
	if issues := fallReportSchema.Validate(&event); issues != nil {
		return nil, status.Errorf(codes.InvalidArgument, "validation error: %v", issues)
	}
	event.Source = guardian.SourceGateway

	personID, err := s.Pipeline.VerifyFall(ctx, event)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid device token")
	}

	if s.Alerter != nil {
		s.Alerter.Alert(ctx, personID, event)
	}

	// a verified fall runs to the end even if the caller goes away
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout())
	defer cancel()

	report, err := s.Pipeline.ProcessFall(runCtx, personID, event)
	if report == nil {
		getLogger().Error("Failed to process gateway fall report", zap.String("personId", personID), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "process fall: %v", err)
	}

	resp, buildErr := structpb.NewStruct(fallResponse(report, err))
	if buildErr != nil {
		return nil, status.Errorf(codes.Internal, "build response: %v", buildErr)
	}
	return resp, nil
}

func fallResponse(report *guardian.FallReport, err error) map[string]any {
	out := map[string]any{
		"status":   StatusProcessed,
		"personId": report.PersonID,
	}
	if report.CheckIn != nil {
		out["checkInId"] = report.CheckIn.ID
		out["checkInDay"] = report.CheckIn.Day
	}
	if report.Notification != "" {
		out["notificationId"] = report.Notification
	}
	if report.Result != nil {
		out["outcome"] = string(report.Result.Outcome)
		if report.Result.Reason != "" {
			out["reason"] = report.Result.Reason
		}
	}
	if report.Skipped != nil {
		out["status"] = StatusSkipped
		out["skipped"] = report.Skipped.Error()
	}
	if err != nil {
		out["status"] = StatusDegraded
		out["error"] = err.Error()
	}
	return out
}

func (s *GatewayServer) ReportStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var report statusReport
	if err := decodeStruct(req, &report); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid status report: %v", err)
	}
	if issues := statusReportSchema.Validate(&report); issues != nil {
		return nil, status.Errorf(codes.InvalidArgument, "validation error: %v", issues)
	}

	if err := s.Pipeline.HandleStatus(ctx, report.DeviceID, report.StatusEvent); err != nil {
		getLogger().Error("Failed to record gateway status report", zap.String("deviceId", report.DeviceID), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "record status: %v", err)
	}

	return structpb.NewStruct(map[string]any{"status": StatusRecorded, "deviceId": report.DeviceID})
}
