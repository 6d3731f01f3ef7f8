package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Brunilda90/judging26-app/config"
	userRepo "github.com/Brunilda90/judging26-app/database/repository/user"
	"github.com/Brunilda90/judging26-app/models"
)

type fakeUserRepo struct {
	seq   int
	users map[string]*models.User // by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.Username]; ok {
		return userRepo.ErrDuplicateUsername
	}
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := f.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByJudgeID(ctx context.Context, judgeID string) (*models.User, error) {
	for _, u := range f.users {
		if u.JudgeID == judgeID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpsertByJudgeID(ctx context.Context, judgeID string, patch map[string]interface{}) error {
	username, _ := patch["username"].(string)
	if existing, ok := f.users[username]; ok && existing.JudgeID != judgeID {
		return userRepo.ErrDuplicateUsername
	}
	for name, u := range f.users {
		if u.JudgeID == judgeID {
			delete(f.users, name)
			u.Username = username
			if hash, ok := patch["password_hash"].(string); ok {
				u.PasswordHash = hash
			}
			if round, ok := patch["judge_round"].(string); ok {
				u.JudgeRound = round
			}
			f.users[username] = u
			return nil
		}
	}
	f.seq++
	u := &models.User{ID: fmt.Sprintf("user-%d", f.seq), Username: username, Role: models.RoleJudge, JudgeID: judgeID}
	if hash, ok := patch["password_hash"].(string); ok {
		u.PasswordHash = hash
	}
	if round, ok := patch["judge_round"].(string); ok {
		u.JudgeRound = round
	}
	f.users[username] = u
	return nil
}

func (f *fakeUserRepo) DeleteByJudgeID(ctx context.Context, judgeID string) error {
	for name, u := range f.users {
		if u.JudgeID == judgeID {
			delete(f.users, name)
		}
	}
	return nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeJudgeStore struct {
	seq     int
	judges  map[string]*models.Judge
	deleted []string
}

func newFakeJudgeStore() *fakeJudgeStore {
	return &fakeJudgeStore{judges: map[string]*models.Judge{}}
}

func (f *fakeJudgeStore) CreateJudge(ctx context.Context, judge *models.Judge) error {
	f.seq++
	judge.ID = fmt.Sprintf("judge-%d", f.seq)
	copied := *judge
	f.judges[judge.ID] = &copied
	return nil
}

func (f *fakeJudgeStore) UpdateJudge(ctx context.Context, id string, patch map[string]interface{}) error {
	return nil
}

func (f *fakeJudgeStore) DeleteJudge(ctx context.Context, id string) error {
	delete(f.judges, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService() (*DefaultService, *fakeUserRepo, *fakeJudgeStore) {
	users := newFakeUserRepo()
	judges := newFakeJudgeStore()
	return NewService(users, judges, zap.NewNop()), users, judges
}

func seedAccount(t *testing.T, users *fakeUserRepo, username, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if err := users.Create(context.Background(), &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService()
	seedAccount(t, users, "admin", "hunter2", models.RoleAdmin)

	session, err := svc.Authenticate(ctx, "admin", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if session.Token == "" || session.Role != models.RoleAdmin {
		t.Errorf("unexpected session: %+v", session)
	}

	if _, err := svc.Authenticate(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService()
	config.AppConfig.DefaultAdminUsername = "admin"
	config.AppConfig.DefaultAdminPassword = "change-me"

	if err := svc.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	if n, _ := users.CountByRole(ctx, models.RoleAdmin); n != 1 {
		t.Fatalf("expected 1 admin, got %d", n)
	}

	// Idempotent once an admin exists.
	if err := svc.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("second EnsureDefaultAdmin: %v", err)
	}
	if n, _ := users.CountByRole(ctx, models.RoleAdmin); n != 1 {
		t.Errorf("expected still 1 admin, got %d", n)
	}
}

func TestCreateJudgeAccount(t *testing.T) {
	ctx := context.Background()
	svc, users, judges := newTestService()

	judge, err := svc.CreateJudgeAccount(ctx, JudgeAccountInput{
		Name:     "Dr. Turing",
		Username: "turing",
		Password: "enigma",
	})
	if err != nil {
		t.Fatalf("CreateJudgeAccount: %v", err)
	}
	if judge.ID == "" {
		t.Fatal("judge id not assigned")
	}
	account, _ := users.GetByJudgeID(ctx, judge.ID)
	if account == nil || account.Role != models.RoleJudge || account.JudgeRound != models.RoundPrelims {
		t.Errorf("unexpected account: %+v", account)
	}
	if len(judges.judges) != 1 {
		t.Errorf("expected 1 judge record, got %d", len(judges.judges))
	}
}

func TestCreateJudgeAccountRollsBackOnUsernameConflict(t *testing.T) {
	ctx := context.Background()
	svc, _, judges := newTestService()

	if _, err := svc.CreateJudgeAccount(ctx, JudgeAccountInput{
		Name: "Dr. Turing", Username: "turing", Password: "enigma",
	}); err != nil {
		t.Fatalf("CreateJudgeAccount: %v", err)
	}

	_, err := svc.CreateJudgeAccount(ctx, JudgeAccountInput{
		Name: "Dr. Hopper", Username: "turing", Password: "cobol",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	// The second judge record must not outlive its failed account.
	if len(judges.judges) != 1 {
		t.Errorf("expected orphan judge rolled back, have %d records", len(judges.judges))
	}
	if len(judges.deleted) != 1 {
		t.Errorf("expected 1 rollback deletion, got %d", len(judges.deleted))
	}
}

func TestDeleteJudgeAccount(t *testing.T) {
	ctx := context.Background()
	svc, users, judges := newTestService()

	judge, err := svc.CreateJudgeAccount(ctx, JudgeAccountInput{
		Name: "Dr. Turing", Username: "turing", Password: "enigma",
	})
	if err != nil {
		t.Fatalf("CreateJudgeAccount: %v", err)
	}
	if err := svc.DeleteJudgeAccount(ctx, judge.ID); err != nil {
		t.Fatalf("DeleteJudgeAccount: %v", err)
	}
	if account, _ := users.GetByJudgeID(ctx, judge.ID); account != nil {
		t.Errorf("account should be gone, got %+v", account)
	}
	if len(judges.judges) != 0 {
		t.Errorf("judge record should be gone")
	}
}
