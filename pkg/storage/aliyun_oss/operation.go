package aliyun_oss

import (
	"bytes"
	"io"

	"github.com/noteledger/note-ledger-service/pkg/fileurl"

	"github.com/pkg/errors"
)

// SendFile 上传文件流
func (p *OSS) SendFile(pathKey string, file io.Reader, cType string) (string, error) {
	fileKey := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey
	if err := p.Bucket.PutObject(fileKey, file); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

// SendContent 上传字节内容
func (p *OSS) SendContent(pathKey string, content []byte) (string, error) {
	fileKey := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey
	if err := p.Bucket.PutObject(fileKey, bytes.NewReader(content)); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

// Delete 删除文件
func (p *OSS) Delete(pathKey string) error {
	fileKey := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey
	return p.Bucket.DeleteObject(fileKey)
}
