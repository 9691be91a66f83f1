package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	util "github.com/Adarshn09/YoutubeDownloder1/utils"
)

// Health handles GET /health for load balancers and uptime probes.
func (ct *Controller) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"busy":      util.SlotsFull(),
	})
}

// System handles GET /api/system with host resource usage. Each probe is
// independent; a failing one reports -1 instead of failing the endpoint.
func (ct *Controller) System(c *gin.Context) {
	cpuPercent := -1.0
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		cpuPercent = percents[0]
	}

	memPercent, memUsed, memTotal := -1.0, uint64(0), uint64(0)
	if vm, err := mem.VirtualMemory(); err == nil {
		memPercent, memUsed, memTotal = vm.UsedPercent, vm.Used, vm.Total
	}

	diskPercent, diskFree := -1.0, uint64(0)
	if du, err := disk.Usage("/"); err == nil {
		diskPercent, diskFree = du.UsedPercent, du.Free
	}

	var uptime uint64
	if up, err := host.Uptime(); err == nil {
		uptime = up
	}

	c.JSON(http.StatusOK, gin.H{
		"cpu_percent":    cpuPercent,
		"memory_percent": memPercent,
		"memory_used":    memUsed,
		"memory_total":   memTotal,
		"disk_percent":   diskPercent,
		"disk_free":      diskFree,
		"uptime_seconds": uptime,
	})
}
