package attach

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the payload carried by a Handle.
type Kind string

const (
	KindPCI Kind = "pci" // PCI function address
)

// PCIAddress is a PCI function address in domain:bus:device.function form.
type PCIAddress struct {
	Domain   uint16 `json:"domain" yaml:"domain"`
	Bus      uint8  `json:"bus" yaml:"bus"`
	Device   uint8  `json:"device" yaml:"device"`
	Function uint8  `json:"function" yaml:"function"`
}

// Handle describes how an accelerator is attached to an instance.
// The zero value means no attachment.
type Handle struct {
	Kind Kind        `json:"kind,omitempty"`
	PCI  *PCIAddress `json:"pci,omitempty"`
}

func NewPCIHandle(addr PCIAddress) Handle {
	return Handle{Kind: KindPCI, PCI: &addr}
}

func (h Handle) IsZero() bool {
	return h.Kind == ""
}

func (h Handle) Validate() error {
	switch h.Kind {
	case "":
		if h.PCI != nil {
			return fmt.Errorf("attach handle without kind carries a pci payload")
		}
		return nil
	case KindPCI:
		if h.PCI == nil {
			return fmt.Errorf("pci attach handle has no address")
		}
		return h.PCI.Validate()
	default:
		return fmt.Errorf("unknown attach handle kind %q", h.Kind)
	}
}

func (h Handle) String() string {
	switch h.Kind {
	case KindPCI:
		if h.PCI != nil {
			return string(h.Kind) + ":" + h.PCI.String()
		}
	}
	return string(h.Kind)
}

// Validate checks the device and function fit their 5 and 3 bit fields.
func (a PCIAddress) Validate() error {
	if a.Device > 0x1f {
		return fmt.Errorf("pci device %#x out of range", a.Device)
	}
	if a.Function > 0x7 {
		return fmt.Errorf("pci function %#x out of range", a.Function)
	}
	return nil
}

func (a PCIAddress) String() string {
	return fmt.Sprintf("%04x:%02x:%02x.%x", a.Domain, a.Bus, a.Device, a.Function)
}

// ParsePCIAddress parses "dddd:bb:dd.f". The domain may be omitted ("bb:dd.f").
func ParsePCIAddress(s string) (PCIAddress, error) {
	var addr PCIAddress
	s = strings.TrimSpace(s)

	dot := strings.LastIndex(s, ".")
	if dot < 0 {
		return addr, fmt.Errorf("invalid pci address %q: missing function", s)
	}
	fn, err := strconv.ParseUint(s[dot+1:], 16, 8)
	if err != nil {
		return addr, fmt.Errorf("invalid pci address %q: %w", s, err)
	}

	parts := strings.Split(s[:dot], ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	if len(parts) != 3 {
		return addr, fmt.Errorf("invalid pci address %q", s)
	}

	domain, err := strconv.ParseUint(parts[0], 16, 16)
	if err != nil {
		return addr, fmt.Errorf("invalid pci domain in %q: %w", s, err)
	}
	bus, err := strconv.ParseUint(parts[1], 16, 8)
	if err != nil {
		return addr, fmt.Errorf("invalid pci bus in %q: %w", s, err)
	}
	dev, err := strconv.ParseUint(parts[2], 16, 8)
	if err != nil {
		return addr, fmt.Errorf("invalid pci device in %q: %w", s, err)
	}

	addr = PCIAddress{
		Domain:   uint16(domain),
		Bus:      uint8(bus),
		Device:   uint8(dev),
		Function: uint8(fn),
	}
	return addr, addr.Validate()
}
