package expense_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hadetan/expense-tracking/internal/category"
	"github.com/hadetan/expense-tracking/internal/expense"
)

var lastYear = time.Date(time.Now().Year()-1, 3, 15, 0, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	userID := uuid.New()
	cat := &category.Category{ID: uuid.New(), Name: "Travel", OwnerID: userID}

	type args struct {
		params expense.CreateParams
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(repo *expense.MockRepository, cats *expense.MockCategoryResolver)
		wantAmount string
		wantErr    error
	}

	valid := expense.CreateParams{
		UserID:      userID,
		CategoryID:  cat.ID,
		Amount:      decimal.RequireFromString("100.505"),
		Description: "  Taxi fare ",
		Date:        lastYear,
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: valid},
			setupMock: func(repo *expense.MockRepository, cats *expense.MockCategoryResolver) {
				cats.EXPECT().Get(gomock.Any(), cat.ID, userID).Return(cat, nil)
				repo.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.ID = uuid.New()
						return nil
					})
			},
			wantAmount: "100.51",
		},
		{
			name: "ZeroAmount",
			args: args{params: func() expense.CreateParams {
				p := valid
				p.Amount = decimal.RequireFromString("0.001")
				return p
			}()},
			wantErr: expense.ErrValidation,
		},
		{
			name: "DescriptionTooLong",
			args: args{params: func() expense.CreateParams {
				p := valid
				p.Description = strings.Repeat("a", 501)
				return p
			}()},
			wantErr: expense.ErrValidation,
		},
		{
			name: "FutureDate",
			args: args{params: func() expense.CreateParams {
				p := valid
				p.Date = time.Now().AddDate(0, 0, 2)
				return p
			}()},
			wantErr: expense.ErrValidation,
		},
		{
			name: "ForeignCategory",
			args: args{params: valid},
			setupMock: func(_ *expense.MockRepository, cats *expense.MockCategoryResolver) {
				cats.EXPECT().Get(gomock.Any(), cat.ID, userID).Return(nil, category.ErrNotFound)
			},
			wantErr: expense.ErrInvalidCategory,
		},
		{
			name: "RepoError",
			args: args{params: valid},
			setupMock: func(repo *expense.MockRepository, cats *expense.MockCategoryResolver) {
				cats.EXPECT().Get(gomock.Any(), cat.ID, userID).Return(cat, nil)
				repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			cats := expense.NewMockCategoryResolver(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, cats)
			}

			svc := expense.NewService(repo, cats)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if !strings.Contains(tt.wantErr.Error(), "db error") {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, expense.StatusPending, got.Status)
			assert.Equal(t, tt.wantAmount, got.Amount.StringFixed(2))
			assert.Equal(t, "Taxi fare", got.Description)
			assert.Equal(t, cat, got.Category)
			assert.Nil(t, got.RejectionReason)
		})
	}
}

func TestService_Update(t *testing.T) {
	ownerID := uuid.New()
	expenseID := uuid.New()
	owner := expense.Actor{UserID: ownerID}

	existing := func(status expense.Status) *expense.Expense {
		e := &expense.Expense{
			ID:          expenseID,
			UserID:      ownerID,
			CategoryID:  uuid.New(),
			Amount:      decimal.RequireFromString("10.00"),
			Description: "Lunch",
			Date:        lastYear,
			Status:      status,
		}

		if status == expense.StatusRejected {
			e.RejectionReason = new("Missing the receipt")
		}

		return e
	}

	type testCase struct {
		name      string
		actor     expense.Actor
		params    expense.UpdateParams
		setupMock func(repo *expense.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "RejectedResetsToPending",
			actor:  owner,
			params: expense.UpdateParams{Description: new("Team lunch")},
			setupMock: func(repo *expense.MockRepository) {
				repo.EXPECT().GetExpense(gomock.Any(), expenseID).Return(existing(expense.StatusRejected), nil)
				repo.EXPECT().
					UpdateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						assert.Equal(t, expense.StatusPending, e.Status)
						assert.Nil(t, e.RejectionReason)
						assert.Equal(t, "Team lunch", e.Description)
						return nil
					})
			},
		},
		{
			name:   "ApprovedIsImmutable",
			actor:  owner,
			params: expense.UpdateParams{Description: new("Team lunch")},
			setupMock: func(repo *expense.MockRepository) {
				repo.EXPECT().GetExpense(gomock.Any(), expenseID).Return(existing(expense.StatusApproved), nil)
			},
			wantErr: expense.ErrImmutable,
		},
		{
			name:   "NotOwner",
			actor:  expense.Actor{UserID: uuid.New(), IsAdmin: true},
			params: expense.UpdateParams{Description: new("Team lunch")},
			setupMock: func(repo *expense.MockRepository) {
				repo.EXPECT().GetExpense(gomock.Any(), expenseID).Return(existing(expense.StatusPending), nil)
			},
			wantErr: expense.ErrForbidden,
		},
		{
			name:   "InvalidAmount",
			actor:  owner,
			params: expense.UpdateParams{Amount: new(decimal.RequireFromString("-5"))},
			setupMock: func(repo *expense.MockRepository) {
				repo.EXPECT().GetExpense(gomock.Any(), expenseID).Return(existing(expense.StatusPending), nil)
			},
			wantErr: expense.ErrValidation,
		},
		{
			name:   "NotFound",
			actor:  owner,
			params: expense.UpdateParams{},
			setupMock: func(repo *expense.MockRepository) {
				repo.EXPECT().GetExpense(gomock.Any(), expenseID).Return(nil, expense.ErrNotFound)
			},
			wantErr: expense.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := expense.NewService(repo, expense.NewMockCategoryResolver(ctrl))
			got, err := svc.Update(context.Background(), tt.actor, expenseID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, expense.StatusPending, got.Status)
		})
	}
}

func TestService_Reject(t *testing.T) {
	id := uuid.New()

	t.Run("ShortReason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := expense.NewService(expense.NewMockRepository(ctrl), expense.NewMockCategoryResolver(ctrl))
		_, err := svc.Reject(context.Background(), id, "  too short ")

		var vErr *expense.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "reason", vErr.Field)
	})

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reason := "Receipt is not legible"
		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().UpdateStatus(gomock.Any(), id, expense.StatusRejected, &reason).Return(nil)
		repo.EXPECT().GetExpense(gomock.Any(), id).Return(&expense.Expense{
			ID:              id,
			Status:          expense.StatusRejected,
			RejectionReason: &reason,
		}, nil)

		svc := expense.NewService(repo, expense.NewMockCategoryResolver(ctrl))
		got, err := svc.Reject(context.Background(), id, " "+reason+" ")
		require.NoError(t, err)
		assert.Equal(t, expense.StatusRejected, got.Status)
	})

	t.Run("NotPending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().
			UpdateStatus(gomock.Any(), id, expense.StatusRejected, gomock.Any()).
			Return(expense.ErrInvalidTransition)

		svc := expense.NewService(repo, expense.NewMockCategoryResolver(ctrl))
		_, err := svc.Reject(context.Background(), id, "Duplicate of an earlier claim")
		assert.ErrorIs(t, err, expense.ErrInvalidTransition)
	})
}

func TestService_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().UpdateStatus(gomock.Any(), id, expense.StatusApproved, nil).Return(nil)
	repo.EXPECT().GetExpense(gomock.Any(), id).Return(&expense.Expense{ID: id, Status: expense.StatusApproved}, nil)

	got, err := expense.NewService(repo, expense.NewMockCategoryResolver(ctrl)).Approve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusApproved, got.Status)
}

func TestService_List(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		actor     expense.Actor
		filter    expense.ListFilter
		setupMock func(m *expense.MockRepository)
		want      expense.Pagination
	}

	tests := []testCase{
		{
			name:   "EmployeeScopedWithDefaults",
			actor:  expense.Actor{UserID: userID},
			filter: expense.ListFilter{},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					ListExpenses(gomock.Any(), expense.ListFilter{UserID: &userID, Page: 1, Limit: 10}).
					Return([]*expense.Expense{{ID: uuid.New()}}, 25, nil)
			},
			want: expense.Pagination{CurrentPage: 1, TotalPages: 3, TotalCount: 25, Limit: 10, HasNextPage: true},
		},
		{
			name:   "AdminSeesAllAndLimitCapped",
			actor:  expense.Actor{UserID: userID, IsAdmin: true},
			filter: expense.ListFilter{Page: 2, Limit: 500},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					ListExpenses(gomock.Any(), expense.ListFilter{Page: 2, Limit: 100}).
					Return(nil, 150, nil)
			},
			want: expense.Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 150, Limit: 100, HasPreviousPage: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := expense.NewService(repo, expense.NewMockCategoryResolver(ctrl)).List(context.Background(), tt.actor, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Pagination)
		})
	}
}

func TestService_Get_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().GetExpense(gomock.Any(), id).Return(&expense.Expense{ID: id, UserID: uuid.New()}, nil).Times(2)

	svc := expense.NewService(repo, expense.NewMockCategoryResolver(ctrl))

	_, err := svc.Get(context.Background(), expense.Actor{UserID: uuid.New()}, id)
	assert.ErrorIs(t, err, expense.ErrForbidden)

	got, err := svc.Get(context.Background(), expense.Actor{UserID: uuid.New(), IsAdmin: true}, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}
