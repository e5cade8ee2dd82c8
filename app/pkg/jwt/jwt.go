package jwt

import (
	"time"

	jwtgo "github.com/form3tech-oss/jwt-go"
	"github.com/zeebo/errs"
)

var ErrToken = errs.Class("token")

type Config struct {
	Secret string        `help:"shared secret used to verify identity provider session tokens" default:""`
	Issuer string        `help:"expected token issuer" default:"taskhub"`
	Expire time.Duration `help:"lifetime of locally minted tokens" default:"24h"`
}

// TokenPayload is the verified identity carried by a session token.
type TokenPayload struct {
	UserID string
	Email  string
}

type claims struct {
	Email string `json:"email,omitempty"`
	jwtgo.StandardClaims
}

type Jwt struct {
	config *Config
}

func NewJWT(conf *Config) (*Jwt, error) {
	if conf.Secret == "" {
		return nil, ErrToken.New("jwt secret is not configured")
	}
	return &Jwt{config: conf}, nil
}

// CreateToken mints a session token. The identity provider issues tokens
// in production; this exists for the dev token command and tests.
func (j *Jwt) CreateToken(payload TokenPayload) (string, time.Time, error) {
	expire := time.Now().Add(j.config.Expire)
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, &claims{
		Email: payload.Email,
		StandardClaims: jwtgo.StandardClaims{
			Subject:   payload.UserID,
			Issuer:    j.config.Issuer,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expire.Unix(),
		},
	})
	signed, err := token.SignedString([]byte(j.config.Secret))
	if err != nil {
		return "", time.Time{}, ErrToken.Wrap(err)
	}
	return signed, expire, nil
}

// ValidateToken verifies the signature and expiry and returns the
// embedded identity.
func (j *Jwt) ValidateToken(tokenStr string) (*TokenPayload, error) {
	c := claims{}
	token, err := jwtgo.ParseWithClaims(tokenStr, &c, func(t *jwtgo.Token) (any, error) {
		if _, ok := t.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, ErrToken.New("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.config.Secret), nil
	})
	if err != nil {
		return nil, ErrToken.Wrap(err)
	}
	if !token.Valid || c.Subject == "" {
		return nil, ErrToken.New("invalid token")
	}
	return &TokenPayload{UserID: c.Subject, Email: c.Email}, nil
}
