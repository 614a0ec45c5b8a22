package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeProfiles struct {
	byID map[string]*entity.Profile
	seq  int
}

func newFakeProfiles(ps ...*entity.Profile) *fakeProfiles {
	f := &fakeProfiles{byID: map[string]*entity.Profile{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) Create(_ context.Context, p *entity.Profile) error {
	for _, q := range f.byID {
		if q.Email == p.Email {
			return repo.ErrConflict
		}
	}
	f.seq++
	p.ID = fmt.Sprintf("user-%d", f.seq)
	p.Level = 1
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	for _, p := range f.byID {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeProfiles) Update(_ context.Context, p *entity.Profile) error {
	if _, ok := f.byID[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) AddPoints(_ context.Context, userID string, points int) (*entity.Profile, error) {
	p, ok := f.byID[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	p.TotalPoints += points
	p.Level = entity.LevelFor(p.TotalPoints)
	cp := *p
	return &cp, nil
}

type fakeSessions struct {
	m map[string]entity.Session
}

func newFakeSessions() *fakeSessions { return &fakeSessions{m: map[string]entity.Session{}} }

func (f *fakeSessions) Create(_ context.Context, s entity.Session) error {
	f.m[s.UserID] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, userID string) (*entity.Session, error) {
	s, ok := f.m[userID]
	if !ok {
		return nil, repo.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) modify(userID string, fn func(*entity.Session)) error {
	s, ok := f.m[userID]
	if !ok {
		return repo.ErrSessionNotFound
	}
	fn(&s)
	f.m[userID] = s
	return nil
}

func (f *fakeSessions) RotateSID(_ context.Context, userID, sid string) error {
	return f.modify(userID, func(s *entity.Session) { s.SID = sid })
}

func (f *fakeSessions) UpdateIdentity(_ context.Context, userID, name, avatarURL string) error {
	return f.modify(userID, func(s *entity.Session) { s.Name, s.AvatarURL = name, avatarURL })
}

func (f *fakeSessions) SetWallet(_ context.Context, userID, wallet string) error {
	return f.modify(userID, func(s *entity.Session) { s.WalletAddress = wallet })
}

func (f *fakeSessions) ClearWallet(_ context.Context, userID string) error {
	return f.modify(userID, func(s *entity.Session) { s.WalletAddress = "" })
}

func (f *fakeSessions) Delete(_ context.Context, userID string) error {
	delete(f.m, userID)
	return nil
}

type fakeAchievements struct {
	catalog []entity.Achievement
	mine    map[string]*entity.UserAchievement
}

func newFakeAchievements(catalog ...entity.Achievement) *fakeAchievements {
	return &fakeAchievements{catalog: catalog, mine: map[string]*entity.UserAchievement{}}
}

func (f *fakeAchievements) List(context.Context) ([]entity.Achievement, error) {
	return f.catalog, nil
}

func (f *fakeAchievements) ListByTrigger(_ context.Context, trigger string) ([]entity.Achievement, error) {
	var out []entity.Achievement
	for _, a := range f.catalog {
		if a.TriggerType == trigger {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAchievements) UserAchievements(_ context.Context, userID string) ([]entity.UserAchievement, error) {
	var out []entity.UserAchievement
	for _, ua := range f.mine {
		if ua.UserID == userID {
			out = append(out, *ua)
		}
	}
	return out, nil
}

func (f *fakeAchievements) entry(userID, id string) *entity.UserAchievement {
	k := userID + "/" + id
	ua, ok := f.mine[k]
	if !ok {
		ua = &entity.UserAchievement{UserID: userID, AchievementID: id}
		f.mine[k] = ua
	}
	return ua
}

func (f *fakeAchievements) RecordProgress(_ context.Context, userID, id string, progress float64) error {
	f.entry(userID, id).Progress = progress
	return nil
}

func (f *fakeAchievements) Unlock(_ context.Context, userID, id string) (bool, error) {
	ua := f.entry(userID, id)
	if ua.Unlocked {
		return false, nil
	}
	now := time.Now()
	ua.Unlocked, ua.UnlockedAt, ua.Progress = true, &now, 100
	return true, nil
}

type fakeNotifications struct {
	items []entity.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *entity.Notification) error {
	n.ID = fmt.Sprintf("n-%d", len(f.items)+1)
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeNotifications) List(_ context.Context, userID string, unreadOnly bool) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, n := range f.items {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id, userID string) error {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].Read = true
			return nil
		}
	}
	return repo.ErrNotFound
}

type publishedEvent struct {
	Type   string
	UserID string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) Publish(_ context.Context, eventType, userID string, _ any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{Type: eventType, UserID: userID})
}

func (f *fakePublisher) types() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}

type fakeCache struct {
	m map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{m: map[string][]byte{}} }

func (f *fakeCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	b, ok := f.m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.m[key] = b
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.m, k)
	}
	return nil
}

// fakeLearning keeps courses, sections and per-user completion in memory.
type fakeLearning struct {
	courses  []entity.Course
	sections []entity.CourseSection
	done     map[string]bool // user/section
}

func (f *fakeLearning) ListCourses(_ context.Context, routeType string) ([]entity.Course, error) {
	var out []entity.Course
	for _, c := range f.courses {
		if routeType == "" || c.RouteType == routeType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeLearning) GetCourse(_ context.Context, id string) (*entity.Course, error) {
	for _, c := range f.courses {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeLearning) ListSections(_ context.Context, courseID string) ([]entity.CourseSection, error) {
	var out []entity.CourseSection
	for _, s := range f.sections {
		if s.CourseID == courseID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeLearning) GetSection(_ context.Context, id string) (*entity.CourseSection, error) {
	for _, s := range f.sections {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeLearning) CompletedSections(_ context.Context, userID, courseID string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, s := range f.sections {
		if s.CourseID == courseID && f.done[userID+"/"+s.ID] {
			out[s.ID] = true
		}
	}
	return out, nil
}

func (f *fakeLearning) UpsertSectionProgress(_ context.Context, p *entity.SectionProgress) error {
	if f.done == nil {
		f.done = map[string]bool{}
	}
	f.done[p.UserID+"/"+p.SectionID] = p.Completed
	return nil
}

func (f *fakeLearning) CourseCounts(ctx context.Context, userID, routeType string) ([]repo.CourseCounts, error) {
	courses, _ := f.ListCourses(ctx, routeType)
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].RouteType != courses[j].RouteType {
			return courses[i].RouteType < courses[j].RouteType
		}
		return courses[i].OrderNumber < courses[j].OrderNumber
	})
	out := make([]repo.CourseCounts, 0, len(courses))
	for _, c := range courses {
		cc := repo.CourseCounts{CourseID: c.ID, Title: c.Title, RouteType: c.RouteType, ModuleCode: c.ModuleCode, OrderNumber: c.OrderNumber}
		for _, s := range f.sections {
			if s.CourseID != c.ID {
				continue
			}
			cc.Total++
			if f.done[userID+"/"+s.ID] {
				cc.Completed++
			}
		}
		out = append(out, cc)
	}
	return out, nil
}

type fakeCertificates struct {
	certs map[string]*entity.Certificate // user/module
	mints map[string]*entity.NFTMint     // module/wallet
}

func newFakeCertificates() *fakeCertificates {
	return &fakeCertificates{certs: map[string]*entity.Certificate{}, mints: map[string]*entity.NFTMint{}}
}

func (f *fakeCertificates) Get(_ context.Context, userID, moduleID string) (*entity.Certificate, error) {
	c, ok := f.certs[userID+"/"+moduleID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCertificates) ListByUser(_ context.Context, userID string) ([]entity.Certificate, error) {
	var out []entity.Certificate
	for _, c := range f.certs {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCertificates) Create(_ context.Context, c *entity.Certificate) error {
	k := c.UserID + "/" + c.ModuleID
	if _, ok := f.certs[k]; ok {
		return repo.ErrConflict
	}
	c.ID = "cert-" + k
	cp := *c
	f.certs[k] = &cp
	return nil
}

func (f *fakeCertificates) SetArchiveURL(_ context.Context, id, url string) error {
	for _, c := range f.certs {
		if c.ID == id {
			c.ArchiveURL = url
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeCertificates) GetMint(_ context.Context, moduleID, wallet string) (*entity.NFTMint, error) {
	m, ok := f.mints[moduleID+"/"+wallet]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeCertificates) CreateMint(_ context.Context, m *entity.NFTMint) error {
	k := m.ModuleID + "/" + m.WalletAddress
	if _, ok := f.mints[k]; ok {
		return repo.ErrConflict
	}
	m.ID = "mint-" + k
	cp := *m
	f.mints[k] = &cp
	return nil
}

type fakeTransactions struct {
	items []entity.Transaction
}

func (f *fakeTransactions) List(_ context.Context, flt repo.TransactionFilter) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, t := range f.items {
		if t.UserID != flt.UserID {
			continue
		}
		if !flt.From.IsZero() && t.Date.Before(flt.From) {
			continue
		}
		if !flt.To.IsZero() && t.Date.After(flt.To) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTransactions) Get(_ context.Context, id string) (*entity.Transaction, error) {
	for _, t := range f.items {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeTransactions) Create(_ context.Context, t *entity.Transaction) error {
	t.ID = fmt.Sprintf("tx-%d", len(f.items)+1)
	f.items = append(f.items, *t)
	return nil
}

func (f *fakeTransactions) Delete(_ context.Context, id, userID string) error {
	for i, t := range f.items {
		if t.ID == id && t.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeTransactions) Count(_ context.Context, userID string) (int, error) {
	n := 0
	for _, t := range f.items {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

// fakeCalendar applies the same seat rules as the SQL repository.
type fakeCalendar struct {
	slots  map[string]*entity.Availability
	events map[string]*entity.Event
	booked map[string]bool // slot/user
	joined map[string]bool // event/user
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{
		slots:  map[string]*entity.Availability{},
		events: map[string]*entity.Event{},
		booked: map[string]bool{},
		joined: map[string]bool{},
	}
}

func (f *fakeCalendar) ListAvailability(context.Context, repo.AvailabilityFilter) ([]entity.Availability, error) {
	var out []entity.Availability
	for _, a := range f.slots {
		if a.IsAvailable {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeCalendar) Book(_ context.Context, availabilityID, userID string) (*entity.Booking, error) {
	a, ok := f.slots[availabilityID]
	switch {
	case !ok:
		return nil, repo.ErrNotFound
	case !a.IsAvailable:
		return nil, repo.ErrSlotUnavailable
	case a.BookedCount >= a.MaxParticipants:
		return nil, repo.ErrSlotFull
	case f.booked[availabilityID+"/"+userID]:
		return nil, repo.ErrAlreadyBooked
	}
	f.booked[availabilityID+"/"+userID] = true
	a.BookedCount++
	cp := *a
	return &entity.Booking{ID: "b-" + availabilityID + "-" + userID, AvailabilityID: availabilityID, UserID: userID,
		Status: "confirmed", Availability: &cp}, nil
}

func (f *fakeCalendar) UserBookings(context.Context, string) ([]entity.Booking, error) {
	return nil, nil
}

func (f *fakeCalendar) ListEvents(context.Context, time.Time, time.Time) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeCalendar) RegisterEvent(_ context.Context, eventID, userID string) (*entity.EventRegistration, error) {
	e, ok := f.events[eventID]
	switch {
	case !ok:
		return nil, repo.ErrNotFound
	case f.joined[eventID+"/"+userID]:
		return nil, repo.ErrAlreadyRegistered
	case e.MaxParticipants > 0 && e.RegisteredCount >= e.MaxParticipants:
		return nil, repo.ErrEventFull
	}
	f.joined[eventID+"/"+userID] = true
	e.RegisteredCount++
	cp := *e
	return &entity.EventRegistration{ID: "r-" + eventID + "-" + userID, EventID: eventID, UserID: userID, Event: &cp}, nil
}

func (f *fakeCalendar) UserRegistrations(context.Context, string) ([]entity.EventRegistration, error) {
	return nil, nil
}

type fakeMentors struct {
	mentors     []entity.Mentor
	assignments map[string]*entity.MentorAssignment // by user
	messages    []entity.MentorMessage
}

func (f *fakeMentors) ListAvailable(context.Context) ([]entity.Mentor, error) {
	var out []entity.Mentor
	for _, m := range f.mentors {
		if m.Available {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMentors) ActiveAssignment(_ context.Context, userID string) (*entity.MentorAssignment, error) {
	a, ok := f.assignments[userID]
	if !ok || !a.Active {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeMentors) Messages(_ context.Context, assignmentID string) ([]entity.MentorMessage, error) {
	var out []entity.MentorMessage
	for _, m := range f.messages {
		if m.AssignmentID == assignmentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMentors) AddMessage(_ context.Context, m *entity.MentorMessage) error {
	m.ID = fmt.Sprintf("msg-%d", len(f.messages)+1)
	m.CreatedAt = time.Now()
	f.messages = append(f.messages, *m)
	return nil
}

type fakeQueue struct {
	jobs []any
}

func (f *fakeQueue) PublishJSON(_ context.Context, body any) error {
	f.jobs = append(f.jobs, body)
	return nil
}
