package util

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var (
	machineID      string
	machineIDMutex sync.Mutex
)

// GetMachineID 获取当前机器的唯一标识符
// 优先使用 machineid 库，Linux 下回退读取主板序列号
// 全部失败返回空字符串，调用者需自行判断
func GetMachineID() string {
	machineIDMutex.Lock()
	defer machineIDMutex.Unlock()

	if machineID != "" {
		return machineID
	}

	if id, err := machineid.ID(); err == nil && id != "" {
		machineID = id
		return machineID
	}

	if id, err := getBoardSerial(); err == nil && id != "" {
		machineID = id
		return machineID
	}

	return ""
}

func getBoardSerial() (string, error) {
	if runtime.GOOS != "linux" {
		return "", errors.New("board serial fallback only supported on linux")
	}
	content, err := os.ReadFile("/sys/class/dmi/id/board_serial")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}
