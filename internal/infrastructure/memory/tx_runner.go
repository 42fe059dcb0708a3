package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/staffops-api/internal/application/shift"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var _ shift.TxRunner = (*TxRunner)(nil)

// TxRunner serializa por clave con un mutex por clave. No hay rollback: las
// escrituras de fn quedan aplicadas aunque fn devuelva error, por eso los casos de
// uso escriben como último paso.
type TxRunner struct {
	s     *Store
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s, locks: make(map[string]*sync.Mutex)}
}

// RunShift ejecuta fn con el lock de lockKey tomado.
func (r *TxRunner) RunShift(ctx context.Context, lockKey string, fn func(shifts repository.ShiftRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := r.lock(lockKey)
	l.Lock()
	defer l.Unlock()
	return fn(r.s.Shifts())
}

// lock nunca libera entradas: el mapa crece con cada (empresa, usuario) visto.
// Aceptable para desarrollo y tests; el adaptador Postgres usa advisory locks.
func (r *TxRunner) lock(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[key]
	if !ok {
		l = &sync.Mutex{}
		r.locks[key] = l
	}
	return l
}
