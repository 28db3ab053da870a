package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"medisched-service/internal/app/models"
	"medisched-service/internal/app/services/core/schedule"
	"medisched-service/internal/pkg/dto/requests"
	"medisched-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAppointmentRepo mimics the Mongo repository, including the unique
// (doctorId, slotKey) constraint, so coordinator behavior under concurrency
// can be tested without a live store.
type fakeAppointmentRepo struct {
	mu   sync.Mutex
	byID map[string]models.Appointment
	seq  int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: map[string]models.Appointment{}}
}

func (r *fakeAppointmentRepo) Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slotKey := schedule.SlotKey(appointment.Date)
	for _, stored := range r.byID {
		if stored.DoctorID == appointment.DoctorID && stored.SlotKey == slotKey {
			return nil, exceptions.ErrSlotTaken
		}
	}

	r.seq++
	now := time.Now().UTC()
	appointment.ID = fmt.Sprintf("appt-%d", r.seq)
	appointment.SlotKey = slotKey
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	r.byID[appointment.ID] = *appointment
	return appointment, nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.byID[appointmentID]; ok {
		return &stored, nil
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindAll(ctx context.Context) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointments := []models.Appointment{}
	for _, stored := range r.byID {
		appointments = append(appointments, stored)
	}
	sort.Slice(appointments, func(i, j int) bool { return appointments[i].SlotKey < appointments[j].SlotKey })
	return appointments, nil
}

func (r *fakeAppointmentRepo) FindByDoctorAndDate(ctx context.Context, doctorID, day string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointments := []models.Appointment{}
	for _, stored := range r.byID {
		if stored.DoctorID == doctorID && schedule.DayOf(stored.Date) == day {
			appointments = append(appointments, stored)
		}
	}
	sort.Slice(appointments, func(i, j int) bool { return appointments[i].SlotKey < appointments[j].SlotKey })
	return appointments, nil
}

func (r *fakeAppointmentRepo) UpdateByID(ctx context.Context, appointmentID string, appointment *models.Appointment) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[appointmentID]
	if !ok {
		return nil, nil
	}

	slotKey := schedule.SlotKey(appointment.Date)
	for id, other := range r.byID {
		if id != appointmentID && other.DoctorID == appointment.DoctorID && other.SlotKey == slotKey {
			return nil, exceptions.ErrSlotTaken
		}
	}

	stored.DoctorID = appointment.DoctorID
	stored.Date = appointment.Date
	stored.SlotKey = slotKey
	stored.Duration = appointment.Duration
	stored.AppointmentType = appointment.AppointmentType
	stored.PatientName = appointment.PatientName
	stored.Notes = appointment.Notes
	stored.UpdatedAt = time.Now().UTC()
	r.byID[appointmentID] = stored
	return &stored, nil
}

func (r *fakeAppointmentRepo) DeleteByID(ctx context.Context, appointmentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[appointmentID]; !ok {
		return false, nil
	}
	delete(r.byID, appointmentID)
	return true, nil
}

func (r *fakeAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// conflictBlindRepo hides existing bookings from the pre-filter so the
// store-level uniqueness rejection path is exercised directly.
type conflictBlindRepo struct {
	*fakeAppointmentRepo
}

func (r *conflictBlindRepo) FindByDoctorAndDate(ctx context.Context, doctorID, day string) ([]models.Appointment, error) {
	return []models.Appointment{}, nil
}

type fakeDoctorRepo struct {
	mu   sync.Mutex
	byID map[string]models.Doctor
}

func newFakeDoctorRepo(doctors ...models.Doctor) *fakeDoctorRepo {
	repo := &fakeDoctorRepo{byID: map[string]models.Doctor{}}
	for _, doctor := range doctors {
		repo.byID[doctor.ID] = doctor
	}
	return repo
}

func (r *fakeDoctorRepo) Insert(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[doctor.ID] = *doctor
	return doctor, nil
}

func (r *fakeDoctorRepo) FindAll(ctx context.Context) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctors := []models.Doctor{}
	for _, doctor := range r.byID {
		doctors = append(doctors, doctor)
	}
	return doctors, nil
}

func (r *fakeDoctorRepo) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doctor, ok := r.byID[doctorID]; ok {
		return &doctor, nil
	}
	return nil, nil
}

// fakeLocker grants a key to one holder at a time, like the Redis SetNX
// lease.
type fakeLocker struct {
	mu   sync.Mutex
	held map[string]string
	seq  int
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]string{}}
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.held[key]; taken {
		return false, "", nil
	}
	l.seq++
	lockValue := fmt.Sprintf("lock-%d", l.seq)
	l.held[key] = lockValue
	return true, lockValue, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == lockValue {
		delete(l.held, key)
	}
	return nil
}

// grantAllLocker simulates a lost or expired lock: everyone wins it.
type grantAllLocker struct{}

func (grantAllLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return true, "noop", nil
}

func (grantAllLocker) Unlock(ctx context.Context, key, lockValue string) error { return nil }

var testDoctor = models.Doctor{
	ID:   "doc-1",
	Name: "Dr. Amelia Hart",
	WorkingHours: models.WorkingHours{
		Start: "09:00",
		End:   "17:00",
	},
}

func createRequestAt(date string) *requests.CreateAppointmentRequest {
	return &requests.CreateAppointmentRequest{
		DoctorID:        testDoctor.ID,
		Date:            date,
		Duration:        30,
		AppointmentType: "checkup",
		PatientName:     "John Casey",
	}
}

func asCustomError(t *testing.T, err error) *exceptions.CustomError {
	t.Helper()
	var customError *exceptions.CustomError
	require.True(t, errors.As(err, &customError), "expected a CustomError, got %v", err)
	return customError
}

func TestCreateAppointment(t *testing.T) {
	t.Run("Creates Confirmed Appointment", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		result, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))

		require.NoError(t, err)
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, testDoctor.ID, result.DoctorID)
		assert.Equal(t, "checkup", result.AppointmentType)
		require.NotNil(t, result.Doctor)
		assert.Equal(t, testDoctor.Name, result.Doctor.Name)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("Missing Required Field Is Rejected Without Mutation", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		request := createRequestAt("2024-06-01T09:00:00Z")
		request.PatientName = ""

		_, err := uc.CreateAppointment(context.Background(), request)

		customError := asCustomError(t, err)
		assert.Equal(t, 400, customError.StatusCode)
		assert.Equal(t, 0, repo.count())
	})

	t.Run("Unparseable Date Is Rejected", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		_, err := uc.CreateAppointment(context.Background(), createRequestAt("01-06-2024 09:00"))

		customError := asCustomError(t, err)
		assert.Equal(t, 400, customError.StatusCode)
		assert.Equal(t, 0, repo.count())
	})

	t.Run("Same Slot Twice Conflicts", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		_, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)

		_, err = uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))

		customError := asCustomError(t, err)
		assert.Equal(t, 409, customError.StatusCode)
		details, ok := customError.Details.(exceptions.SlotConflictDetails)
		require.True(t, ok)
		assert.Equal(t, "09:00", details.RequestedTime)
		assert.Contains(t, details.BookedTimes, "09:00")
		assert.Equal(t, 1, repo.count(), "a rejected booking must not mutate the store")
	})

	t.Run("Next Slot Succeeds", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		_, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)

		_, err = uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:30:00Z"))

		require.NoError(t, err)
		assert.Equal(t, 2, repo.count())
	})

	t.Run("Same Time Different Doctor Succeeds", func(t *testing.T) {
		otherDoctor := models.Doctor{ID: "doc-2", Name: "Dr. Bram Stoker"}
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor, otherDoctor), newFakeLocker(), zap.NewNop())

		_, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)

		request := createRequestAt("2024-06-01T09:00:00Z")
		request.DoctorID = otherDoctor.ID
		_, err = uc.CreateAppointment(context.Background(), request)

		require.NoError(t, err)
		assert.Equal(t, 2, repo.count())
	})

	t.Run("Store Uniqueness Rejection Translates To Conflict", func(t *testing.T) {
		repo := &conflictBlindRepo{newFakeAppointmentRepo()}
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), grantAllLocker{}, zap.NewNop())

		_, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)

		_, err = uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))

		customError := asCustomError(t, err)
		assert.Equal(t, 409, customError.StatusCode)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("Cancelled Context Never Mutates", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := uc.CreateAppointment(ctx, createRequestAt("2024-06-01T09:00:00Z"))

		assert.Error(t, err)
		assert.Equal(t, 0, repo.count())
	})
}

func TestCreateAppointmentConcurrency(t *testing.T) {
	t.Run("Exactly One Of N Concurrent Bookings Wins", func(t *testing.T) {
		const attempts = 24

		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		successes, conflicts := 0, 0
		for err := range results {
			switch {
			case err == nil:
				successes++
			case exceptions.IsSlotConflict(err):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, successes)
		assert.Equal(t, attempts-1, conflicts)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("Store Constraint Holds Even Without The Lock", func(t *testing.T) {
		const attempts = 16

		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), grantAllLocker{}, zap.NewNop())

		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T10:00:00Z"))
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		successes := 0
		for err := range results {
			if err == nil {
				successes++
			} else {
				assert.True(t, exceptions.IsSlotConflict(err), "expected slot conflict, got %v", err)
			}
		}

		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, repo.count())
	})
}

func TestUpdateAppointment(t *testing.T) {
	updateRequestAt := func(date string) *requests.UpdateAppointmentRequest {
		return &requests.UpdateAppointmentRequest{
			DoctorID: testDoctor.ID,
			Date:     date,
		}
	}

	t.Run("Keeping Own Time Is Not A Conflict", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		created, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)

		updated, err := uc.UpdateAppointment(context.Background(), created.ID, updateRequestAt("2024-06-01T09:00:00Z"))

		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
	})

	t.Run("Moving To A Booked Time Conflicts Without Mutation", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		_, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)
		target, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T10:00:00Z"))
		require.NoError(t, err)

		_, err = uc.UpdateAppointment(context.Background(), target.ID, updateRequestAt("2024-06-01T09:00:00Z"))

		customError := asCustomError(t, err)
		assert.Equal(t, 409, customError.StatusCode)

		unchanged, err := repo.FindByID(context.Background(), target.ID)
		require.NoError(t, err)
		assert.Equal(t, "10:00", schedule.TimeOfDay(unchanged.Date), "failed update must leave the appointment untouched")
	})

	t.Run("Moving To A Free Time Succeeds", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		created, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)

		updated, err := uc.UpdateAppointment(context.Background(), created.ID, updateRequestAt("2024-06-01T11:30:00Z"))

		require.NoError(t, err)
		assert.Equal(t, "11:30", schedule.TimeOfDay(updated.Date))
	})

	t.Run("Optional Fields Only Overwrite When Present", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		created, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)

		notes := "bring previous results"
		request := updateRequestAt("2024-06-01T09:00:00Z")
		request.Notes = &notes

		updated, err := uc.UpdateAppointment(context.Background(), created.ID, request)

		require.NoError(t, err)
		assert.Equal(t, notes, updated.Notes)
		assert.Equal(t, created.PatientName, updated.PatientName)
		assert.Equal(t, created.Duration, updated.Duration)
	})

	t.Run("Unknown Appointment Is Not Found", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		_, err := uc.UpdateAppointment(context.Background(), "missing", updateRequestAt("2024-06-01T09:00:00Z"))

		customError := asCustomError(t, err)
		assert.Equal(t, 404, customError.StatusCode)
	})
}

func TestCancelAppointment(t *testing.T) {
	t.Run("Cancel Twice Is Success Then Not Found", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		created, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)

		require.NoError(t, uc.CancelAppointment(context.Background(), created.ID))
		assert.Equal(t, 0, repo.count())

		err = uc.CancelAppointment(context.Background(), created.ID)

		customError := asCustomError(t, err)
		assert.Equal(t, 404, customError.StatusCode)
	})

	t.Run("Cancelled Slot Becomes Bookable Again", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		created, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)
		require.NoError(t, uc.CancelAppointment(context.Background(), created.ID))

		_, err = uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))

		require.NoError(t, err)
	})
}

func TestFindAppointments(t *testing.T) {
	t.Run("FindByID Enriches With Doctor Summary", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		created, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)

		found, err := uc.FindByID(context.Background(), created.ID)

		require.NoError(t, err)
		require.NotNil(t, found.Doctor)
		assert.Equal(t, testDoctor.Name, found.Doctor.Name)
	})

	t.Run("FindByID Unknown Is Not Found", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		_, err := uc.FindByID(context.Background(), "missing")

		customError := asCustomError(t, err)
		assert.Equal(t, 404, customError.StatusCode)
	})

	t.Run("FindAll Returns Every Appointment", func(t *testing.T) {
		repo := newFakeAppointmentRepo()
		uc := NewAppointmentUsecase(repo, newFakeDoctorRepo(testDoctor), newFakeLocker(), zap.NewNop())

		_, err := uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T09:00:00Z"))
		require.NoError(t, err)
		_, err = uc.CreateAppointment(context.Background(), createRequestAt("2024-06-01T10:00:00Z"))
		require.NoError(t, err)

		all, err := uc.FindAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
