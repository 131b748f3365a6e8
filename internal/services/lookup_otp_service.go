package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"food_orders_backend/internal/models"
	"food_orders_backend/internal/repositories"
	"food_orders_backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultLookupOTPTTL         = 5 * time.Minute
	DefaultLookupOTPMaxAttempts = 5
	minLookupPhoneDigits        = 10
)

// LookupOTPConfig tunes the customer order-history challenge.
type LookupOTPConfig struct {
	TTL             time.Duration
	MaxAttempts     int
	Debug           bool // return the code in the response; never enable in production
	DefaultTenantID string
	BcryptCost      int
}

type RequestLookupOTPRequest struct {
	Phone    string `json:"phone"`
	TenantID string `json:"tenantId"`
}

type VerifyLookupOTPRequest struct {
	Phone     string `json:"phone"`
	RequestID string `json:"requestId"`
	OTPCode   string `json:"otpCode"`
	TenantID  string `json:"tenantId"`
}

// LookupOTPChallenge is returned to the customer after requesting a code.
type LookupOTPChallenge struct {
	RequestID string  `json:"requestId"`
	ExpiresAt int64   `json:"expiresAt"`
	DebugOTP  *string `json:"debugOtp,omitempty"`
}

type LookupOTPService interface {
	RequestOTP(ctx context.Context, actor models.Actor, req RequestLookupOTPRequest) (*LookupOTPChallenge, error)
	VerifyAndLookup(ctx context.Context, actor models.Actor, req VerifyLookupOTPRequest) ([]models.Order, error)
}

type lookupOTPService struct {
	otpRepo    repositories.LookupOTPRepository
	orderRepo  repositories.OrderRepository
	tenantRepo repositories.TenantRepository
	locks      *KeyedMutex
	auditor    Auditor
	cfg        LookupOTPConfig
	now        func() time.Time
}

func NewLookupOTPService(
	otpRepo repositories.LookupOTPRepository,
	orderRepo repositories.OrderRepository,
	tenantRepo repositories.TenantRepository,
	locks *KeyedMutex,
	auditor Auditor,
	cfg LookupOTPConfig,
	now func() time.Time,
) LookupOTPService {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultLookupOTPTTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultLookupOTPMaxAttempts
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if now == nil {
		now = time.Now
	}
	return &lookupOTPService{
		otpRepo:    otpRepo,
		orderRepo:  orderRepo,
		tenantRepo: tenantRepo,
		locks:      locks,
		auditor:    auditor,
		cfg:        cfg,
		now:        now,
	}
}

// generateOTP returns a uniformly random code in 1000..9999.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}

// resolveTenant prefers an explicit tenant, then the actor's own tenant.
func (s *lookupOTPService) resolveTenant(actor models.Actor, requested string) string {
	if t := strings.TrimSpace(requested); t != "" {
		return t
	}
	if !actor.IsAnonymous() && actor.TenantID != "" {
		return actor.TenantID
	}
	return ""
}

// prune drops expired challenges. Failures are logged only.
func (s *lookupOTPService) prune(ctx context.Context) {
	removed, err := s.otpRepo.DeleteExpiredLookupOTPs(ctx, s.now().UnixMilli())
	if err != nil {
		utils.LogError(err, "Failed to prune expired lookup OTPs")
		return
	}
	if removed > 0 {
		utils.LogDebug("Pruned expired lookup OTPs", map[string]interface{}{"count": removed})
	}
}

func (s *lookupOTPService) RequestOTP(ctx context.Context, actor models.Actor, req RequestLookupOTPRequest) (*LookupOTPChallenge, error) {
	if err := Authorize(actor, OpLookupRequest); err != nil {
		return nil, err
	}
	phone := utils.DigitsOnly(req.Phone)
	if len(phone) < minLookupPhoneDigits {
		return nil, invalidPayload("phone must contain at least %d digits", minLookupPhoneDigits)
	}
	tenantID := s.resolveTenant(actor, req.TenantID)
	if tenantID == "" {
		tenantID = s.cfg.DefaultTenantID
	}
	exists, err := s.tenantRepo.TenantExists(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("checking tenant %s: %w", tenantID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: tenant %s", ErrNotFound, tenantID)
	}

	s.prune(ctx)

	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("generating otp: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing otp: %w", err)
	}

	now := s.now()
	record := &models.LookupOTP{
		RequestID: uuid.NewString(),
		Phone:     phone,
		TenantID:  tenantID,
		OTPHash:   string(hash),
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(s.cfg.TTL).UnixMilli(),
	}
	if err := s.otpRepo.CreateLookupOTP(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store lookup otp: %w", err)
	}

	s.auditor.Audit(auditEntry(AuditLookupOTPRequest, actor, tenantID, "", record.CreatedAt, map[string]interface{}{
		"requestId":   record.RequestID,
		"phoneLast10": utils.PhoneLast10(phone),
	}))

	challenge := &LookupOTPChallenge{RequestID: record.RequestID, ExpiresAt: record.ExpiresAt}
	if s.cfg.Debug {
		challenge.DebugOTP = &code
	}
	return challenge, nil
}

func (s *lookupOTPService) VerifyAndLookup(ctx context.Context, actor models.Actor, req VerifyLookupOTPRequest) ([]models.Order, error) {
	if err := Authorize(actor, OpLookupVerify); err != nil {
		return nil, err
	}
	phone := utils.DigitsOnly(req.Phone)
	requestID := strings.TrimSpace(req.RequestID)
	code := strings.TrimSpace(req.OTPCode)
	switch {
	case len(phone) < minLookupPhoneDigits:
		return nil, invalidPayload("phone must contain at least %d digits", minLookupPhoneDigits)
	case requestID == "":
		return nil, invalidPayload("requestId is required")
	case code == "":
		return nil, invalidPayload("otpCode is required")
	}

	s.prune(ctx)

	unlock := s.locks.Lock("lookup-otp:" + requestID)
	defer unlock()

	record, err := s.otpRepo.GetLookupOTP(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOTPRequestInvalid
		}
		return nil, fmt.Errorf("failed to load lookup otp: %w", err)
	}
	nowMs := s.now().UnixMilli()
	if record.Expired(nowMs) {
		if err := s.otpRepo.DeleteLookupOTP(ctx, requestID); err != nil {
			utils.LogError(err, "Failed to delete expired lookup OTP", map[string]interface{}{"request_id": requestID})
		}
		return nil, ErrOTPRequestInvalid
	}
	if tenantID := s.resolveTenant(actor, req.TenantID); tenantID != "" && tenantID != record.TenantID {
		return nil, ErrForbidden
	}
	if utils.PhoneLast10(phone) != utils.PhoneLast10(record.Phone) {
		return nil, ErrPhoneMismatch
	}

	if bcrypt.CompareHashAndPassword([]byte(record.OTPHash), []byte(code)) != nil {
		attempts := record.Attempts + 1
		if attempts >= s.cfg.MaxAttempts {
			if err := s.otpRepo.DeleteLookupOTP(ctx, requestID); err != nil {
				return nil, fmt.Errorf("failed to delete exhausted lookup otp: %w", err)
			}
			return nil, ErrOTPAttemptsExceeded
		}
		if err := s.otpRepo.UpdateLookupOTPAttempts(ctx, requestID, attempts); err != nil {
			return nil, fmt.Errorf("failed to record otp attempt: %w", err)
		}
		return nil, &InvalidOTPError{RemainingAttempts: s.cfg.MaxAttempts - attempts}
	}

	if err := s.otpRepo.DeleteLookupOTP(ctx, requestID); err != nil {
		return nil, fmt.Errorf("failed to consume lookup otp: %w", err)
	}
	orders, err := s.orderRepo.GetOrdersByPhone(ctx, record.TenantID, utils.PhoneLast10(record.Phone))
	if err != nil {
		return nil, fmt.Errorf("failed to look up orders: %w", err)
	}

	s.auditor.Audit(auditEntry(AuditLookupOTPVerify, actor, record.TenantID, "", nowMs, map[string]interface{}{
		"requestId": requestID,
		"orders":    len(orders),
	}))
	return orders, nil
}
