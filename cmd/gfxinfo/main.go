// Command gfxinfo prints the display configuration the engine would
// resolve and the graphics devices the host exposes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/prism/engine/config"
	"github.com/spaghettifunk/prism/engine/core"
)

func init() {
	runtime.LockOSThread()
}

type deviceInfo struct {
	Name          string
	Type          string
	APIVersion    string
	DriverVersion string
	LocalMemory   uint64
}

func main() {
	displayPath := flag.String("display", "assets/display.toml", "display configuration file")
	envFile := flag.String("env", ".env", "dotenv file with PRISM_* overrides")
	flag.Parse()

	cfg, kind, err := config.Resolve(*displayPath, *envFile)
	if err != nil {
		core.LogFatal("invalid display config: %s", err)
	}
	fmt.Printf("backend:       %s\n", kind)
	fmt.Printf("title:         %s\n", cfg.Title)
	fmt.Printf("vsync:         %t\n", cfg.VSync)
	fmt.Printf("multisampling: %d\n", cfg.Multisampling)
	if d := cfg.Dimensions; d != nil {
		fmt.Printf("dimensions:    %dx%d\n", d.Width, d.Height)
	}

	devices, err := vulkanDevices()
	if err != nil {
		core.LogWarn("vulkan devices unavailable: %s", err)
		os.Exit(0)
	}
	for i, d := range devices {
		fmt.Printf("device %d: %s (%s) vulkan %s driver %s, %d MiB local\n",
			i, d.Name, d.Type, d.APIVersion, d.DriverVersion, d.LocalMemory/1024/1024)
	}
}

func vulkanDevices() ([]deviceInfo, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	defer glfw.Terminate()

	if !glfw.VulkanSupported() {
		return nil, errors.New("no vulkan loader found")
	}
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		return nil, err
	}

	createInfo := vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:            vk.StructureTypeApplicationInfo,
			ApiVersion:       uint32(vk.MakeVersion(1, 0, 0)),
			PApplicationName: safeString("gfxinfo"),
			PEngineName:      safeString("Prism"),
		},
	}
	if runtime.GOOS == "darwin" {
		extensions := []string{safeString("VK_KHR_portability_enumeration")}
		createInfo.EnabledExtensionCount = uint32(len(extensions))
		createInfo.PpEnabledExtensionNames = extensions
		createInfo.Flags = vk.InstanceCreateFlags(0x00000001) // VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance)); err != nil {
		return nil, fmt.Errorf("failed to create the vulkan instance: %w", err)
	}
	defer vk.DestroyInstance(instance, nil)

	var count uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &count, nil)); err != nil {
		return nil, fmt.Errorf("failed to count physical devices: %w", err)
	}
	if count == 0 {
		return nil, errors.New("no physical devices")
	}
	physical := make([]vk.PhysicalDevice, count)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &count, physical)); err != nil {
		return nil, fmt.Errorf("failed to list physical devices: %w", err)
	}

	devices := make([]deviceInfo, 0, count)
	for _, pd := range physical[:count] {
		var properties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(pd, &properties)
		properties.Deref()

		var memory vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(pd, &memory)
		memory.Deref()

		info := deviceInfo{
			Name:          strings.TrimRight(vk.ToString(properties.DeviceName[:]), "\x00"),
			Type:          deviceType(properties.DeviceType),
			APIVersion:    versionString(properties.ApiVersion),
			DriverVersion: versionString(properties.DriverVersion),
		}
		for i := uint32(0); i < memory.MemoryHeapCount; i++ {
			heap := memory.MemoryHeaps[i]
			heap.Deref()
			if vk.MemoryHeapFlagBits(heap.Flags)&vk.MemoryHeapDeviceLocalBit != 0 {
				info.LocalMemory += uint64(heap.Size)
			}
		}
		devices = append(devices, info)
	}
	return devices, nil
}

func deviceType(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func versionString(v uint32) string {
	version := vk.Version(v)
	return fmt.Sprintf("%d.%d.%d", version.Major(), version.Minor(), version.Patch())
}

// Vulkan expects NUL terminated strings.
func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
