// Package sysinfo detects hardware and firmware facts about the machine
// the installer is running on. Detection happens once at wizard start and
// the snapshot travels with the install context from then on.
package sysinfo

import (
	"bufio"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/instantos/ins/pkg/logging"
)

var log = logging.GetLogger("sysinfo")

// BootMode describes the firmware interface the machine booted with.
type BootMode string

const (
	BootModeUEFI64 BootMode = "UEFI64"
	BootModeUEFI32 BootMode = "UEFI32"
	BootModeBIOS   BootMode = "BIOS"
)

// IsUEFI reports whether the machine booted through UEFI firmware.
func (m BootMode) IsUEFI() bool {
	return m == BootModeUEFI64 || m == BootModeUEFI32
}

// SystemInfo is the detected machine snapshot carried in the install context.
type SystemInfo struct {
	BootMode          BootMode `toml:"boot_mode"`
	InternetConnected bool     `toml:"internet_connected"`
	HasAMDCPU         bool     `toml:"has_amd_cpu"`
	HasIntelCPU       bool     `toml:"has_intel_cpu"`
	GPUs              []string `toml:"gpus"`
	VMType            string   `toml:"vm_type,omitempty"`
	TotalRAMGB        float64  `toml:"total_ram_gb,omitempty"`
}

// Detect builds a SystemInfo snapshot from the running machine.
func Detect() SystemInfo {
	info := SystemInfo{
		BootMode:          detectBootMode(),
		InternetConnected: checkInternet(3 * time.Second),
		VMType:            detectVMType(),
		GPUs:              detectGPUs(),
	}

	if data, err := os.ReadFile("/proc/cpuinfo"); err == nil {
		info.HasAMDCPU, info.HasIntelCPU = parseCPUVendors(string(data))
	}
	if data, err := os.ReadFile("/proc/meminfo"); err == nil {
		info.TotalRAMGB = parseTotalRAMGB(string(data))
	}

	log.Debug().
		Str("bootMode", string(info.BootMode)).
		Bool("internet", info.InternetConnected).
		Strs("gpus", info.GPUs).
		Msg("System detection complete")

	return info
}

// detectBootMode inspects the EFI platform size exposed by the kernel.
// A missing efi directory means the machine booted through legacy BIOS.
func detectBootMode() BootMode {
	data, err := os.ReadFile("/sys/firmware/efi/fw_platform_size")
	if err != nil {
		return BootModeBIOS
	}
	switch strings.TrimSpace(string(data)) {
	case "64":
		return BootModeUEFI64
	case "32":
		return BootModeUEFI32
	default:
		return BootModeBIOS
	}
}

// checkInternet attempts a TCP connection to an Arch mirror endpoint
func checkInternet(timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", "archlinux.org:443", timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// parseCPUVendors scans /proc/cpuinfo content for the CPU vendor string
func parseCPUVendors(cpuinfo string) (amd, intel bool) {
	scanner := bufio.NewScanner(strings.NewReader(cpuinfo))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "vendor_id") {
			continue
		}
		if strings.Contains(line, "AuthenticAMD") {
			amd = true
		}
		if strings.Contains(line, "GenuineIntel") {
			intel = true
		}
	}
	return amd, intel
}

// parseTotalRAMGB extracts MemTotal from /proc/meminfo content, in GiB
func parseTotalRAMGB(meminfo string) float64 {
	scanner := bufio.NewScanner(strings.NewReader(meminfo))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return kb / (1024 * 1024)
	}
	return 0
}

// detectVMType asks systemd which hypervisor we are running under.
// Empty string means bare metal (or systemd-detect-virt is unavailable).
func detectVMType() string {
	out, err := exec.Command("systemd-detect-virt", "--vm").Output()
	if err != nil {
		return ""
	}
	vm := strings.TrimSpace(string(out))
	if vm == "none" {
		return ""
	}
	return vm
}

// detectGPUs lists display controllers from lspci output
func detectGPUs() []string {
	out, err := exec.Command("lspci").Output()
	if err != nil {
		return nil
	}
	return parseGPUs(string(out))
}

// parseGPUs extracts VGA/3D controller descriptions from lspci output
func parseGPUs(lspci string) []string {
	var gpus []string
	scanner := bufio.NewScanner(strings.NewReader(lspci))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "VGA compatible controller") &&
			!strings.Contains(line, "3D controller") &&
			!strings.Contains(line, "Display controller") {
			continue
		}
		if _, desc, found := strings.Cut(line, ": "); found {
			gpus = append(gpus, desc)
		}
	}
	return gpus
}
