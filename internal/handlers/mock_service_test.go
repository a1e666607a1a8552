package handlers

import (
	"context"
	"net/http"
	"sync"

	"hotel_climate/internal/models"
	"hotel_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPhone    string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, phone, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPhone = phone
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRooms struct {
	checkInRoom int
	checkInErr  error
	checkOut    models.Bill
	checkOutErr error
	room        models.Room
	roomErr     error
	rooms       []models.Room
	listErr     error

	lastGuest  int
	lastRoomID int
}

func (m *mockRooms) CheckIn(ctx context.Context, guestID int) (int, error) {
	m.lastGuest = guestID
	return m.checkInRoom, m.checkInErr
}
func (m *mockRooms) CheckOut(ctx context.Context, guestID int) (models.Bill, error) {
	m.lastGuest = guestID
	return m.checkOut, m.checkOutErr
}
func (m *mockRooms) GetRoom(ctx context.Context, roomID int) (models.Room, error) {
	m.lastRoomID = roomID
	return m.room, m.roomErr
}
func (m *mockRooms) ListRooms(ctx context.Context) ([]models.Room, error) {
	return m.rooms, m.listErr
}

// mockLedger records the occupant found in ctx so tests can check the guard is wired.
// errs is consumed one entry per call before err is used.
type mockLedger struct {
	err      error
	errs     []error
	settings models.ClimateSettings
	cost     float64
	bill     models.Bill
	report   models.Report

	calls        int
	lastRoomID   int
	lastGuest    int
	lastOccupant int
	lastSettings models.ClimateSettings
}

func (m *mockLedger) next(ctx context.Context, roomID int) error {
	m.calls++
	m.lastRoomID = roomID
	m.lastOccupant, _ = service.OccupantFrom(ctx)
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return err
	}
	return m.err
}

func (m *mockLedger) TurnOnAC(ctx context.Context, roomID int) error {
	return m.next(ctx, roomID)
}
func (m *mockLedger) TurnOffAC(ctx context.Context, roomID int) (models.ClimateSettings, error) {
	return m.settings, m.next(ctx, roomID)
}
func (m *mockLedger) SetSettings(ctx context.Context, roomID int, s models.ClimateSettings) (models.ClimateSettings, error) {
	m.lastSettings = s
	return s, m.next(ctx, roomID)
}
func (m *mockLedger) CurrentCost(ctx context.Context, guestID int) (float64, error) {
	m.lastGuest = guestID
	return m.cost, m.next(ctx, 0)
}
func (m *mockLedger) GenerateBill(ctx context.Context, guestID int) (models.Bill, error) {
	m.lastGuest = guestID
	return m.bill, m.next(ctx, 0)
}
func (m *mockLedger) UsageReport(ctx context.Context, roomID int) (models.Report, error) {
	return m.report, m.next(ctx, roomID)
}

type mockMonitoring struct {
	mu     sync.Mutex
	status models.RoomStatus
	err    error
	calls  int
}

func (m *mockMonitoring) GetStatus(ctx context.Context, roomID int) (models.RoomStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	st := m.status
	st.Room.ID = roomID
	return st, m.err
}

type mockEventLog struct {
	resp       []models.RoomEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.RoomEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func testOptions() Options {
	opts := DefaultOptions()
	opts.RetryBackoff = 0
	return opts
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, testOptions())
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
