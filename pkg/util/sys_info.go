package util

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// SysInfo 运行环境信息
type SysInfo struct {
	OS           string  `json:"os"`
	Platform     string  `json:"platform"`
	Arch         string  `json:"arch"`
	NumCPU       int     `json:"numCpu"`
	Goroutines   int     `json:"goroutines"`
	MemTotal     uint64  `json:"memTotal"`
	MemUsed      uint64  `json:"memUsed"`
	MemUsedPct   float64 `json:"memUsedPct"`
	UptimeSecond uint64  `json:"uptimeSecond"`
}

// GetSysInfo 收集当前主机的运行环境信息
// 采集失败的字段保持零值，不返回错误
func GetSysInfo() *SysInfo {
	info := &SysInfo{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		Goroutines: runtime.NumGoroutine(),
	}

	if h, err := host.Info(); err == nil {
		info.Platform = h.Platform + " " + h.PlatformVersion
		info.UptimeSecond = h.Uptime
	}

	if v, err := mem.VirtualMemory(); err == nil {
		info.MemTotal = v.Total
		info.MemUsed = v.Used
		info.MemUsedPct = v.UsedPercent
	}

	return info
}
