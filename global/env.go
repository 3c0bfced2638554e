package global

import (
	"github.com/noteledger/note-ledger-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Note Ledger Service"
	// 构建时通过 ldflags 注入
	Version string = "dev"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
