package agent

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/linskybing/accel-platform/internal/domain/attach"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// PoolFile is the YAML layout of the attach handle pool:
//
//	providers:
//	  rp-123:
//	    - "0000:5e:00.0"
//	    - "0000:5e:00.1"
type PoolFile struct {
	Providers map[string][]string `yaml:"providers"`
}

// Static hands out PCI functions from a fixed pool per device resource
// provider. Allocation is keyed by ARQ so a repeated attach returns the
// same function.
type Static struct {
	mu    sync.Mutex
	pools map[string][]attach.PCIAddress
	// owners maps rp -> address -> arq uuid
	owners map[string]map[attach.PCIAddress]string
}

func NewStatic(pools map[string][]attach.PCIAddress) *Static {
	s := &Static{
		pools:  make(map[string][]attach.PCIAddress, len(pools)),
		owners: make(map[string]map[attach.PCIAddress]string, len(pools)),
	}
	for rp, addrs := range pools {
		s.pools[rp] = append([]attach.PCIAddress(nil), addrs...)
		s.owners[rp] = map[attach.PCIAddress]string{}
	}
	return s
}

// LoadStatic reads a pool file.
func LoadStatic(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attach handle pool: %w", err)
	}
	return ParseStatic(raw)
}

func ParseStatic(raw []byte) (*Static, error) {
	var file PoolFile
	if err := yaml.UnmarshalStrict(raw, &file); err != nil {
		return nil, fmt.Errorf("parse attach handle pool: %w", err)
	}

	pools := make(map[string][]attach.PCIAddress, len(file.Providers))
	for rp, entries := range file.Providers {
		seen := map[attach.PCIAddress]bool{}
		pools[rp] = []attach.PCIAddress{}
		for _, entry := range entries {
			addr, err := attach.ParsePCIAddress(entry)
			if err != nil {
				return nil, fmt.Errorf("provider %s: %w", rp, err)
			}
			if seen[addr] {
				return nil, fmt.Errorf("provider %s: duplicate address %s", rp, addr)
			}
			seen[addr] = true
			pools[rp] = append(pools[rp], addr)
		}
	}
	return NewStatic(pools), nil
}

func (s *Static) Attach(ctx context.Context, target BindTarget) (attach.Handle, error) {
	if err := ctx.Err(); err != nil {
		return attach.Handle{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[target.DeviceRPUUID]
	if !ok {
		return attach.Handle{}, fmt.Errorf("%w: %s", ErrUnknownDevice, target.DeviceRPUUID)
	}
	owners := s.owners[target.DeviceRPUUID]

	for _, addr := range pool {
		if owners[addr] == target.ARQUUID {
			return attach.NewPCIHandle(addr), nil
		}
	}
	for _, addr := range pool {
		if _, taken := owners[addr]; !taken {
			owners[addr] = target.ARQUUID
			log.WithFields(log.Fields{
				"arq":      target.ARQUUID,
				"rp":       target.DeviceRPUUID,
				"host":     target.HostName,
				"instance": target.InstanceUUID,
				"pci":      addr.String(),
			}).Debug("Attached device")
			return attach.NewPCIHandle(addr), nil
		}
	}
	return attach.Handle{}, fmt.Errorf("%w: %s", ErrNoFreeDevice, target.DeviceRPUUID)
}

// Detach frees the function held by the ARQ. Releasing a handle the ARQ
// does not own is a no-op.
func (s *Static) Detach(ctx context.Context, target BindTarget, handle attach.Handle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owners, ok := s.owners[target.DeviceRPUUID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDevice, target.DeviceRPUUID)
	}
	if handle.Kind == attach.KindPCI && handle.PCI != nil {
		if owners[*handle.PCI] == target.ARQUUID {
			delete(owners, *handle.PCI)
		}
		return nil
	}
	for addr, owner := range owners {
		if owner == target.ARQUUID {
			delete(owners, addr)
		}
	}
	return nil
}

// Free returns the number of unallocated functions on a provider.
func (s *Static) Free(rp string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pools[rp]) - len(s.owners[rp])
}
