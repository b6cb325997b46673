package enum

// UserStatus represents the account status of a loyalty member
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBlocked  UserStatus = "blocked"
)

// StoreStatus represents the onboarding status of a partner store
type StoreStatus string

const (
	StoreStatusActive    StoreStatus = "active"
	StoreStatusInactive  StoreStatus = "inactive"
	StoreStatusPending   StoreStatus = "pending"
	StoreStatusSuspended StoreStatus = "suspended"
)

// CouponType represents how a coupon discount is computed
type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFlat       CouponType = "flat"
)

// CouponStatus is derived from the active flag and the validity window
type CouponStatus string

const (
	CouponStatusActive   CouponStatus = "active"
	CouponStatusInactive CouponStatus = "inactive"
	CouponStatusExpired  CouponStatus = "expired"
)

// QuestionType represents the answer widget of a survey question
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeRating         QuestionType = "rating"
)

// HasOptions reports whether the question is answered by picking options
func (t QuestionType) HasOptions() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeMultipleChoice
}

// RewardType represents what a daily reward grants
type RewardType string

const (
	RewardTypePoints   RewardType = "points"
	RewardTypeCoupon   RewardType = "coupon"
	RewardTypeCashback RewardType = "cashback"
)

// TermType represents which legal document a term entry belongs to
type TermType string

const (
	TermTypeTerms   TermType = "terms"
	TermTypePrivacy TermType = "privacy"
	TermTypeRefund  TermType = "refund"
)

