package config

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	publicKey     *rsa.PublicKey
	privateKey    *rsa.PrivateKey
	signingMethod jwt.SigningMethod
	TokenLifetime time.Duration
}

type jwtEnv struct {
	PrivateKey     string        `env:"JWT_PRIVATE_KEY"`
	PrivateKeyFile string        `env:"JWT_PRIVATE_KEY_FILE,file"`
	PublicKey      string        `env:"JWT_PUBLIC_KEY"`
	PublicKeyFile  string        `env:"JWT_PUBLIC_KEY_FILE,file"`
	TokenLifetime  time.Duration `env:"JWT_TOKEN_LIFETIME" envDefault:"720h"`
}

func NewJWT() (*JWT, error) {
	return newJWT(nil)
}

// The public key defaults to the one derived from the private key.
func newJWT(environ map[string]string) (*JWT, error) {
	var e jwtEnv
	if err := parse(&e, environ); err != nil {
		return nil, err
	}

	privatePEM := e.PrivateKey
	if privatePEM == "" {
		privatePEM = e.PrivateKeyFile
	}
	if privatePEM == "" {
		return nil, errors.New("no JWT_PRIVATE_KEY or JWT_PRIVATE_KEY_FILE env variable set")
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privatePEM))
	if err != nil {
		return nil, err
	}

	publicKey := &privateKey.PublicKey
	publicPEM := e.PublicKey
	if publicPEM == "" {
		publicPEM = e.PublicKeyFile
	}
	if publicPEM != "" {
		if publicKey, err = jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM)); err != nil {
			return nil, err
		}
	}

	return NewJWTFromKey(privateKey, publicKey, e.TokenLifetime), nil
}

func NewJWTFromKey(private *rsa.PrivateKey, public *rsa.PublicKey, lifetime time.Duration) *JWT {
	if public == nil {
		public = &private.PublicKey
	}
	return &JWT{
		privateKey:    private,
		publicKey:     public,
		signingMethod: jwt.SigningMethodRS256,
		TokenLifetime: lifetime,
	}
}

func (j *JWT) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.privateKey)
}

func (j *JWT) ParseWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
}
