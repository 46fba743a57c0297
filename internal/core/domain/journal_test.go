package domain_test

import (
	"testing"
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    domain.JournalItem
		wantErr error
	}{
		{
			name: "valid debit line",
			item: domain.JournalItem{
				AccountCode: "1200",
				Debit:       decimal.RequireFromString("115.00"),
				Credit:      decimal.Zero,
			},
			wantErr: nil,
		},
		{
			name: "valid credit line",
			item: domain.JournalItem{
				AccountCode: "4000",
				Debit:       decimal.Zero,
				Credit:      decimal.RequireFromString("100.00"),
			},
			wantErr: nil,
		},
		{
			name: "zero-zero line is a permitted no-op",
			item: domain.JournalItem{
				AccountCode: "4000",
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
			},
			wantErr: nil,
		},
		{
			name: "both sides set",
			item: domain.JournalItem{
				AccountCode: "1200",
				Debit:       decimal.NewFromInt(10),
				Credit:      decimal.NewFromInt(10),
			},
			wantErr: domain.ErrItemBothSides,
		},
		{
			name: "negative debit",
			item: domain.JournalItem{
				AccountCode: "1200",
				Debit:       decimal.NewFromInt(-5),
				Credit:      decimal.Zero,
			},
			wantErr: domain.ErrItemNegativeAmount,
		},
		{
			name: "negative credit",
			item: domain.JournalItem{
				AccountCode: "1200",
				Debit:       decimal.Zero,
				Credit:      decimal.NewFromInt(-5),
			},
			wantErr: domain.ErrItemNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{
		Items: []domain.JournalItem{
			{AccountCode: "1200", Debit: decimal.RequireFromString("115.00"), Credit: decimal.Zero},
			{AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.RequireFromString("100.00")},
			{AccountCode: "2100", Debit: decimal.Zero, Credit: decimal.RequireFromString("15.00")},
		},
	}

	assert.True(t, entry.TotalDebits().Equal(decimal.RequireFromString("115.00")))
	assert.True(t, entry.TotalCredits().Equal(decimal.RequireFromString("115.00")))
	assert.True(t, entry.IsBalanced())
}

func TestJournalEntry_IsBalanced(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.JournalItem
		want  bool
	}{
		{
			name:  "empty entry balances trivially",
			items: nil,
			want:  true,
		},
		{
			name: "balanced two-line entry",
			items: []domain.JournalItem{
				{Debit: decimal.NewFromInt(200), Credit: decimal.Zero},
				{Debit: decimal.Zero, Credit: decimal.NewFromInt(200)},
			},
			want: true,
		},
		{
			name: "unbalanced by a cent",
			items: []domain.JournalItem{
				{Debit: decimal.RequireFromString("100.00"), Credit: decimal.Zero},
				{Debit: decimal.Zero, Credit: decimal.RequireFromString("99.99")},
			},
			want: false,
		},
		{
			name: "exact decimal comparison, no epsilon",
			items: []domain.JournalItem{
				{Debit: decimal.RequireFromString("0.1"), Credit: decimal.Zero},
				{Debit: decimal.RequireFromString("0.2"), Credit: decimal.Zero},
				{Debit: decimal.Zero, Credit: decimal.RequireFromString("0.3")},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.JournalEntry{Items: tt.items}
			assert.Equal(t, tt.want, entry.IsBalanced())
		})
	}
}

func TestJournalEntry_Mutable(t *testing.T) {
	assert.True(t, (&domain.JournalEntry{Status: domain.Draft}).Mutable())
	assert.False(t, (&domain.JournalEntry{Status: domain.Posted}).Mutable())
	assert.False(t, (&domain.JournalEntry{Status: domain.Canceled}).Mutable())
}

func TestAccountType_NormalDebit(t *testing.T) {
	assert.True(t, domain.Asset.NormalDebit())
	assert.True(t, domain.Expense.NormalDebit())
	assert.False(t, domain.Liability.NormalDebit())
	assert.False(t, domain.Equity.NormalDebit())
	assert.False(t, domain.Income.NormalDebit())
}

func TestAccountActivity_Balance(t *testing.T) {
	tests := []struct {
		name     string
		activity domain.AccountActivity
		want     string
	}{
		{
			name: "asset balance is debits minus credits",
			activity: domain.AccountActivity{
				AccountType: domain.Asset,
				Debits:      decimal.RequireFromString("220.00"),
				Credits:     decimal.Zero,
			},
			want: "220.00",
		},
		{
			name: "income balance is credits minus debits",
			activity: domain.AccountActivity{
				AccountType: domain.Income,
				Debits:      decimal.Zero,
				Credits:     decimal.RequireFromString("200.00"),
			},
			want: "200.00",
		},
		{
			name: "liability with debit activity nets down",
			activity: domain.AccountActivity{
				AccountType: domain.Liability,
				Debits:      decimal.RequireFromString("5.00"),
				Credits:     decimal.RequireFromString("20.00"),
			},
			want: "15.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.activity.Balance().Equal(decimal.RequireFromString(tt.want)),
				"got %s", tt.activity.Balance())
		})
	}
}

func TestEngagementTask_SignOff(t *testing.T) {
	now := time.Now()

	t.Run("prepare moves task to review", func(t *testing.T) {
		task := domain.EngagementTask{Status: domain.TaskInProgress}
		task.SignOffPrepare("user-a", now)
		assert.Equal(t, domain.TaskReview, task.Status)
		assert.NotNil(t, task.PreparedBy)
		assert.Equal(t, "user-a", *task.PreparedBy)
	})

	t.Run("review before prepare fails", func(t *testing.T) {
		task := domain.EngagementTask{Status: domain.TaskInProgress}
		err := task.SignOffReview("user-b", now)
		assert.ErrorIs(t, err, domain.ErrNotPrepared)
	})

	t.Run("preparer cannot review", func(t *testing.T) {
		task := domain.EngagementTask{Status: domain.TaskInProgress}
		task.SignOffPrepare("user-a", now)
		err := task.SignOffReview("user-a", now)
		assert.ErrorIs(t, err, domain.ErrReviewerIsPreparer)
	})

	t.Run("distinct reviewer completes the task", func(t *testing.T) {
		task := domain.EngagementTask{Status: domain.TaskInProgress}
		task.SignOffPrepare("user-a", now)
		err := task.SignOffReview("user-b", now)
		assert.NoError(t, err)
		assert.Equal(t, domain.TaskDone, task.Status)
		assert.Equal(t, "user-b", *task.ReviewedBy)
	})
}
