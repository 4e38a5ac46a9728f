package guardian

import (
	"context"
	"sync"
	"time"

	"liyu1981.xyz/guardian-alert-service/pkg/db"
	"liyu1981.xyz/guardian-alert-service/pkg/models"
	"liyu1981.xyz/guardian-alert-service/pkg/push"
)

//go:generate mockgen -destination=./mocks/mock_guardian.go -package=mocks liyu1981.xyz/guardian-alert-service/pkg/guardian ICheckIn,IDirectory,IDeviceRegistry,IResolver,INotifier,IInbox,IPipeline,IStatusRecorder

type IVerifier interface {
	Verify(token string) (string, error)
}

type ICheckIn interface {
	UpsertCheckIn(ctx context.Context, personID string, eventTime string, fields CheckInFields) (*models.CheckIn, error)
	LatestCheckIn(ctx context.Context, personID string) (*models.CheckIn, error)
	CheckIns(ctx context.Context, personID string) ([]models.CheckIn, error)
	CheckInsInRange(ctx context.Context, personID string, start, end time.Time) ([]models.CheckIn, error)
	CaretakerSummary(ctx context.Context, caretakerID string, date string) ([]PersonSummary, error)
}

type IDirectory interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	GetUsersByCaretaker(ctx context.Context, caretakerID string) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, fields map[string]any) (*models.User, error)
	UpsertUser(ctx context.Context, user *models.User) error
}

type IDeviceRegistry interface {
	Register(ctx context.Context, userID, token string, platform models.Platform) (*models.RegisteredDevice, error)
	ListByUser(ctx context.Context, userID string) ([]models.RegisteredDevice, error)
	Remove(ctx context.Context, userID, token string) error
}

type IResolver interface {
	ResolveCaretakerDevices(ctx context.Context, personID string) (*Resolution, error)
}

type INotifier interface {
	Create(ctx context.Context, event FallEvent, resolution *Resolution) (*models.Notification, error)
	Dispatch(ctx context.Context, notification *models.Notification) *DispatchResult
	Drain()
}

type IInbox interface {
	ListNotifications(ctx context.Context, userID string, opts ListOptions) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error)
}

type IPipeline interface {
	VerifyFall(ctx context.Context, event FallEvent) (string, error)
	ProcessFall(ctx context.Context, personID string, event FallEvent) (*FallReport, error)
	HandleFall(ctx context.Context, event FallEvent) (*FallReport, error)
	HandleStatus(ctx context.Context, deviceID string, event StatusEvent) error
}

type IStatusRecorder interface {
	Record(ctx context.Context, status *models.DeviceStatus) error
}

type Options struct {
	Location            *time.Location
	FallbackPushToken   string
	DispatchConcurrency int
}

type Guardian struct {
	Db       db.DB
	Options  Options
	Verifier IVerifier
	Push     push.Provider

	CheckIn   ICheckIn
	Directory IDirectory
	Devices   IDeviceRegistry
	Resolver  IResolver
	Notifier  INotifier
	Inbox     IInbox
	Pipeline  IPipeline
	Status    IStatusRecorder

	prunes sync.WaitGroup
}

type ServiceOpts struct {
	CheckIn   ICheckIn
	Directory IDirectory
	Devices   IDeviceRegistry
	Resolver  IResolver
	Notifier  INotifier
	Inbox     IInbox
	Pipeline  IPipeline
	Status    IStatusRecorder
}

// New wires every service to its database-backed implementation. Replace
// any of them with WithServices.
func New(database *db.DB, opts Options, verifier IVerifier, provider push.Provider) *Guardian {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DispatchConcurrency < 1 {
		opts.DispatchConcurrency = 8
	}

	g := &Guardian{
		Db:       *database,
		Options:  opts,
		Verifier: verifier,
		Push:     provider,
	}
	g.CheckIn = g.GetICheckIn()
	g.Directory = g.GetIDirectory()
	g.Devices = g.GetIDeviceRegistry()
	g.Resolver = g.GetIResolver()
	g.Notifier = g.GetINotifier()
	g.Inbox = g.GetIInbox()
	g.Pipeline = g.GetIPipeline()
	g.Status = NewDbStatusRecorder(database)
	return g
}

func (g *Guardian) WithServices(opts ServiceOpts) *Guardian {
	if opts.CheckIn != nil {
		g.CheckIn = opts.CheckIn
	}
	if opts.Directory != nil {
		g.Directory = opts.Directory
	}
	if opts.Devices != nil {
		g.Devices = opts.Devices
	}
	if opts.Resolver != nil {
		g.Resolver = opts.Resolver
	}
	if opts.Notifier != nil {
		g.Notifier = opts.Notifier
	}
	if opts.Inbox != nil {
		g.Inbox = opts.Inbox
	}
	if opts.Pipeline != nil {
		g.Pipeline = opts.Pipeline
	}
	if opts.Status != nil {
		g.Status = opts.Status
	}
	return g
}
