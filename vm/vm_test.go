package vm

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestVMRunHaltsCleanly(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminalFile(devNull(t))
	mem := NewMemory(term)
	cpu := NewCPU(mem, &out)
	v := &VM{Mem: mem, CPU: cpu, Terminal: term}

	mem.Write(UserSpaceStart, 0xF025) // TRAP HALT

	code := v.Run(context.Background())

	if code != ExitOK {
		t.Errorf("Run() = %d, want ExitOK", code)
	}
	if got := out.String(); got != "HALT\n" {
		t.Errorf("output = %q, want %q", got, "HALT\n")
	}
}

func TestVMRunStopsOnCanceledContext(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminalFile(devNull(t))
	mem := NewMemory(term)
	cpu := NewCPU(mem, &out)
	v := &VM{Mem: mem, CPU: cpu, Terminal: term}

	// BR -1 at its own address: an infinite loop that never halts on
	// its own, so the only way Run returns is via context
	// cancellation.
	mem.Write(UserSpaceStart, 0x0FFF)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := v.Run(ctx)

	if code != ExitSIGINT {
		t.Errorf("Run() = %d, want ExitSIGINT", code)
	}
}

func devNull(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestLoadImageIntoFreshVM(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminalFile(devNull(t))
	mem := NewMemory(term)
	cpu := NewCPU(mem, &out)
	v := &VM{Mem: mem, CPU: cpu, Terminal: term}

	img := buildImage(UserSpaceStart, 0xF025)
	origin, err := LoadImage(v.Mem, bytes.NewReader(img))
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if origin != UserSpaceStart {
		t.Fatalf("origin = 0x%04x, want 0x%04x", origin, UserSpaceStart)
	}

	code := v.Run(context.Background())
	if code != ExitOK {
		t.Errorf("Run() = %d, want ExitOK", code)
	}
}

