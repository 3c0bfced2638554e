// Package local_fs 本地文件系统存储
package local_fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/noteledger/note-ledger-service/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath   string `yaml:"save-path" default:"storage/uploads"`
	CustomPath string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(cf *Config) (*LocalFS, error) {
	if cf.SavePath == "" {
		cf.SavePath = "storage/uploads"
	}
	return &LocalFS{Config: cf}, nil
}

// getSavePath 获取带结尾分隔符的保存根目录
func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
}

// SendFile 保存文件流到本地磁盘，返回文件键
func (p *LocalFS) SendFile(pathKey string, file io.Reader, cType string) (string, error) {
	dstFileKey := p.getSavePath() + pathKey

	if err := os.MkdirAll(filepath.Dir(dstFileKey), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(dstFileKey)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	return pathKey, nil
}

// SendContent 保存字节内容到本地磁盘，返回文件键
func (p *LocalFS) SendContent(pathKey string, content []byte) (string, error) {
	dstFileKey := p.getSavePath() + pathKey

	if err := os.MkdirAll(filepath.Dir(dstFileKey), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if err := os.WriteFile(dstFileKey, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	return pathKey, nil
}

// Delete 删除本地文件，文件不存在视为成功
func (p *LocalFS) Delete(pathKey string) error {
	dstFileKey := p.getSavePath() + pathKey
	if fileurl.IsExist(dstFileKey) {
		return os.Remove(dstFileKey)
	}
	return nil
}
