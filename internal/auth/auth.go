// Package auth menangani registrasi, login, dan resolusi bearer token ke
// principal (seller atau customer). Secret dan TTL disuntik lewat Config,
// tidak ada konstanta global.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ariefcatur/go-marketplace.git/internal/market"
)

var (
	ErrUnauthenticated = errors.New("auth: invalid or expired credentials")
	ErrEmailTaken      = errors.New("auth: email already registered")
)

type PrincipalKind string

const (
	KindSeller   PrincipalKind = "seller"
	KindCustomer PrincipalKind = "customer"
)

// Principal adalah identitas yang sudah diresolve; layer core hanya menerima
// ini, tidak pernah token mentah.
type Principal struct {
	Kind  PrincipalKind
	ID    string
	Email string
}

type Config struct {
	Secret   []byte
	Issuer   string
	TokenTTL time.Duration
}

type Service struct {
	cfg   Config
	store market.Store
	now   func() time.Time
}

func New(cfg Config, store market.Store) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 30 * time.Minute
	}
	return &Service{cfg: cfg, store: store, now: time.Now}
}

type RegisterSellerInput struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	StoreName        string `json:"store_name"`
	Phone            string `json:"phone"`
	BusinessLocation string `json:"business_location"`
	Niche            string `json:"niche"`
}

func (s *Service) RegisterSeller(ctx context.Context, in RegisterSellerInput) (market.Seller, error) {
	if _, err := s.store.GetSellerByEmail(ctx, in.Email); err == nil {
		return market.Seller{}, ErrEmailTaken
	} else if !errors.Is(err, market.ErrSellerNotFound) {
		return market.Seller{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return market.Seller{}, err
	}
	return s.store.InsertSeller(ctx, market.Seller{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Email:            in.Email,
		PasswordHash:     string(hash),
		StoreName:        in.StoreName,
		Phone:            in.Phone,
		BusinessLocation: in.BusinessLocation,
		Niche:            in.Niche,
	})
}

type RegisterCustomerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (s *Service) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (market.Customer, error) {
	if _, err := s.store.GetCustomerByEmail(ctx, in.Email); err == nil {
		return market.Customer{}, ErrEmailTaken
	} else if !errors.Is(err, market.ErrCustomerNotFound) {
		return market.Customer{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return market.Customer{}, err
	}
	return s.store.InsertCustomer(ctx, market.Customer{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
	})
}

func (s *Service) LoginSeller(ctx context.Context, email, password string) (string, error) {
	sl, err := s.store.GetSellerByEmail(ctx, email)
	if err != nil {
		return "", ErrUnauthenticated
	}
	if bcrypt.CompareHashAndPassword([]byte(sl.PasswordHash), []byte(password)) != nil {
		return "", ErrUnauthenticated
	}
	return s.issueToken(email, KindSeller)
}

func (s *Service) LoginCustomer(ctx context.Context, email, password string) (string, error) {
	c, err := s.store.GetCustomerByEmail(ctx, email)
	if err != nil {
		return "", ErrUnauthenticated
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return "", ErrUnauthenticated
	}
	return s.issueToken(email, KindCustomer)
}

type claims struct {
	Kind PrincipalKind `json:"kind"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(email string, kind PrincipalKind) (string, error) {
	now := s.now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	})
	return tok.SignedString(s.cfg.Secret)
}

// Authenticate memetakan bearer token ke Principal, atau gagal
// ErrUnauthenticated. Principal di-resolve ulang dari store supaya akun yang
// sudah dihapus tidak bisa pakai token lama.
func (s *Service) Authenticate(ctx context.Context, tokenStr string) (Principal, error) {
	var cl claims
	tok, err := jwt.ParseWithClaims(tokenStr, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthenticated
		}
		return s.cfg.Secret, nil
	})
	if err != nil || !tok.Valid || cl.Subject == "" {
		return Principal{}, ErrUnauthenticated
	}

	switch cl.Kind {
	case KindSeller:
		sl, err := s.store.GetSellerByEmail(ctx, cl.Subject)
		if err != nil {
			return Principal{}, ErrUnauthenticated
		}
		return Principal{Kind: KindSeller, ID: sl.ID, Email: sl.Email}, nil
	case KindCustomer:
		c, err := s.store.GetCustomerByEmail(ctx, cl.Subject)
		if err != nil {
			return Principal{}, ErrUnauthenticated
		}
		return Principal{Kind: KindCustomer, ID: c.ID, Email: c.Email}, nil
	default:
		return Principal{}, ErrUnauthenticated
	}
}
