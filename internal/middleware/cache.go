package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/time-tracker-api/internal/config"
)

// captureWriter captures response body/status while forwarding to the
// client. overflow is set once the body grows past limit; an overflowed
// response is served normally but never cached.
type captureWriter struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	size     int64
	limit    int64
	overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.size += int64(len(b))
	if cw.limit > 0 && cw.size > cw.limit {
		cw.overflow = true
	} else {
		cw.buf.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

// resourceFrom extracts the collection segment from an API path, e.g.
// "/api/v1/users/3" yields "users". Mutations use it to decide which
// cached reads must be dropped.
func resourceFrom(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	i := 0
	if i < len(segs) && segs[i] == "api" {
		i++
		if i < len(segs) && segs[i] == "v1" {
			i++
		}
	}
	if i < len(segs) && segs[i] != "" {
		return segs[i]
	}
	return "misc"
}

// cacheDependents lists, per resource, the resources whose cached
// responses embed data from it. Views denormalize names across
// relations (a time entry carries user, project and client names), so
// mutating one resource must drop the caches that display it.
var cacheDependents = map[string][]string{
	"users":        {"users", "time-entries"},
	"clients":      {"clients", "projects", "time-entries"},
	"projects":     {"projects", "time-entries"},
	"time-entries": {"time-entries"},
}

// cacheKey builds "<prefix>:<resource>:<sha1>", hashing the concrete
// URL path and query so /users/1 and /users/2 never collide.
func cacheKey(prefix, resource string, c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%s:%x", prefix, resource, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 4+4+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:8+len(hdrJSON)], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	hdr := make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, hdr, bs[8+hlen:], true
}

// ResponseCache serves successful GET responses from Redis and drops
// affected entries whenever a mutation succeeds, so a read right after
// a write already sees the new state. Headers are stored alongside the
// body so replayed responses are byte-identical to the original.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			resource := resourceFrom(c.Request().URL.Path)

			if c.Request().Method != http.MethodGet {
				if err := next(c); err != nil {
					return err
				}
				if s := c.Response().Status; s >= 200 && s < 300 {
					purgeResources(rdb, cfg.Prefix, resource)
				}
				return nil
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, resource, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if strings.EqualFold(k, "Content-Length") {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						if _, err := c.Response().Write(body); err != nil {
							return err
						}
					}
					return nil
				}
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && !cw.overflow {
				hdr := make(http.Header, len(c.Response().Header()))
				for k, vals := range c.Response().Header() {
					vv := make([]string, len(vals))
					copy(vv, vals)
					hdr[k] = vv
				}
				if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
					_ = rdb.SetEx(context.Background(), key, payload, cfg.TTL).Err()
				}
			}
			return nil
		}
	}
}

// purgeResources deletes every cached read for the resources that
// depend on the mutated one. SCAN keeps this incremental; latency is
// paid by the writer, not by readers.
func purgeResources(rdb *redis.Client, prefix, resource string) {
	deps, ok := cacheDependents[resource]
	if !ok {
		deps = []string{resource}
	}
	ctx := context.Background()
	for _, dep := range deps {
		pattern := prefix + ":" + dep + ":*"
		var cursor uint64
		for {
			keys, next, err := rdb.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return
			}
			if len(keys) > 0 {
				_ = rdb.Del(ctx, keys...).Err()
			}
			if next == 0 {
				break
			}
			cursor = next
		}
	}
}
