// Package password implementa la política de contraseñas: lista de denegación
// de contraseñas comprometidas y hashing bcrypt.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost costo bcrypt usado en producción.
const DefaultCost = 13

// defaultBreached contraseñas conocidas como comprometidas.
var defaultBreached = []string{
	"PasswordForJanuary", "PasswordForFebruary", "PasswordForMarch",
	"PasswordForApril", "PasswordForMay", "PasswordForJune",
	"PasswordForJuly", "PasswordForAugust", "PasswordForSeptember",
	"PasswordForOctober", "PasswordForNovember", "PasswordForDecember",
}

// Policy política inmutable: se configura al construir, sin estado mutable global.
type Policy struct {
	breached map[string]struct{}
	cost     int
}

// Option configura la Policy al construir.
type Option func(*Policy)

// WithBreachedList reemplaza la lista de denegación por defecto.
func WithBreachedList(list []string) Option {
	return func(p *Policy) {
		p.breached = make(map[string]struct{}, len(list))
		for _, pw := range list {
			p.breached[pw] = struct{}{}
		}
	}
}

// WithCost ajusta el costo bcrypt (útil en tests con bcrypt.MinCost).
func WithCost(cost int) Option {
	return func(p *Policy) { p.cost = cost }
}

// NewPolicy construye la política con la lista por defecto y costo 13.
func NewPolicy(opts ...Option) *Policy {
	p := &Policy{cost: DefaultCost}
	WithBreachedList(defaultBreached)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Breached indica si candidate está en la lista de denegación (match exacto,
// sensible a mayúsculas).
func (p *Policy) Breached(candidate string) bool {
	_, ok := p.breached[candidate]
	return ok
}

// Hash genera el hash bcrypt irreversible y con sal de plaintext.
func (p *Policy) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compara plaintext contra hash en tiempo constante.
func (p *Policy) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
