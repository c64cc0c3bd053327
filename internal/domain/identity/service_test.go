package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medisense/intake/internal/platform/auth"
)

// -- Mock Repository --

type mockDoctorRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockDoctorRepo) Create(_ context.Context, d *Doctor) error {
	for _, existing := range m.doctors {
		if existing.Email == d.Email {
			return ErrEmailTaken
		}
	}
	d.ID = uuid.New()
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) GetByEmail(_ context.Context, email string) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockDoctorRepo) FirstBySpecialty(_ context.Context, specialty string) (*Doctor, error) {
	want := CanonicalSpecialty(specialty)
	for _, d := range m.doctors {
		if d.Active && CanonicalSpecialty(d.Specialty) == want {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func newTestService() (*Service, *mockDoctorRepo) {
	repo := newMockDoctorRepo()
	return NewService(repo, auth.NewTokenManager("test-secret")), repo
}

// -- Tests --

func TestRegister_HashesPassword(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.Register(context.Background(), "Dr. X", "x@medisense.ai", "s3cret", "Cardiología")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.PasswordHash == "s3cret" || d.PasswordHash == "" {
		t.Error("expected password to be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if !d.Active {
		t.Error("expected new doctor to be active")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	cases := [][4]string{
		{"", "x@medisense.ai", "pw", "Cardiología"},
		{"Dr. X", "", "pw", "Cardiología"},
		{"Dr. X", "x@medisense.ai", "", "Cardiología"},
		{"Dr. X", "x@medisense.ai", "pw", "   "},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc[0], tc[1], tc[2], tc[3]); err != ErrMissingFields {
			t.Errorf("expected ErrMissingFields for %v, got %v", tc, err)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Register(context.Background(), "Dr. X", "x@medisense.ai", "pw", "Cardiología"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Dr. Y", "x@medisense.ai", "pw2", "Pediatría"); err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_NormalizesSpecialty(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.Register(context.Background(), "Dr. X", "x@medisense.ai", "pw", "  Cardiología  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Specialty != "Cardiología" {
		t.Errorf("expected trimmed specialty, got %q", d.Specialty)
	}
}

func TestAuthenticate_Success(t *testing.T) {
	svc, _ := newTestService()

	reg, err := svc.Register(context.Background(), "Dr. X", "x@medisense.ai", "s3cret", "Cardiología")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d, token, err := svc.Authenticate(context.Background(), "x@medisense.ai", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != reg.ID {
		t.Errorf("expected doctor %s, got %s", reg.ID, d.ID)
	}

	claims, err := auth.NewTokenManager("test-secret").Parse(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.DoctorID != reg.ID || claims.Specialty != "Cardiología" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthenticate_UniformFailures(t *testing.T) {
	svc, repo := newTestService()

	reg, err := svc.Register(context.Background(), "Dr. X", "x@medisense.ai", "s3cret", "Cardiología")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	if _, _, err := svc.Authenticate(context.Background(), "nobody@medisense.ai", "s3cret"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, _, err := svc.Authenticate(context.Background(), "x@medisense.ai", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	repo.doctors[reg.ID].Active = false
	if _, _, err := svc.Authenticate(context.Background(), "x@medisense.ai", "s3cret"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestFirstBySpecialty_CaseInsensitive(t *testing.T) {
	svc, _ := newTestService()

	reg, err := svc.Register(context.Background(), "Dr. X", "x@medisense.ai", "pw", "Cardiología")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d, err := svc.FirstBySpecialty(context.Background(), "  cardiología ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != reg.ID {
		t.Errorf("expected doctor %s, got %s", reg.ID, d.ID)
	}

	if _, err := svc.FirstBySpecialty(context.Background(), "Neurología"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
