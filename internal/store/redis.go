package store

import (
	"encoding/json"

	"github.com/mediocregopher/radix.v2/pool"

	"github.com/bhaveshvasandani/PortfolioMgmt/internal/portfolio"
)

// keyPrefix namespaces snapshot keys in the shared backend.
const keyPrefix = "portfolio:"

// Redis writes snapshots to a redis-compatible cache backend through a small
// connection pool.
type Redis struct {
	pool *pool.Pool
}

// DialRedis connects to addr (host:port) and verifies the backend responds
// to PING before handing the driver out.
func DialRedis(addr string) (*Redis, error) {
	p, err := pool.New("tcp", addr, 2)
	if err != nil {
		return nil, err
	}
	r := &Redis{pool: p}
	if err := r.Ping(); err != nil {
		p.Empty()
		return nil, err
	}
	return r, nil
}

func (r *Redis) Ping() error {
	return r.pool.Cmd("PING").Err
}

func (r *Redis) SaveSnapshot(snap portfolio.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.pool.Cmd("SET", snapshotKey(snap.User), b).Err
}

func (r *Redis) DeleteSnapshot(user string) error {
	return r.pool.Cmd("DEL", snapshotKey(user)).Err
}

func (r *Redis) Close() error {
	r.pool.Empty()
	return nil
}

func snapshotKey(user string) string { return keyPrefix + user }
