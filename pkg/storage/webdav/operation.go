package webdav

import (
	"io"
	"os"
	"path"

	"github.com/noteledger/note-ledger-service/pkg/fileurl"

	"github.com/pkg/errors"
)

// SendFile 将文件流上传到 WebDAV 服务器
func (w *WebDAV) SendFile(pathKey string, file io.Reader, cType string) (string, error) {
	fileKey := fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + pathKey

	if err := w.Client.MkdirAll(path.Dir(fileKey), 0644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	if err := w.Client.Write(fileKey, content, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	return fileKey, nil
}

// SendContent 将二进制内容上传到 WebDAV 服务器
func (w *WebDAV) SendContent(pathKey string, content []byte) (string, error) {
	fileKey := fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + pathKey

	if err := w.Client.MkdirAll(path.Dir(fileKey), 0644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	if err := w.Client.Write(fileKey, content, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	return fileKey, nil
}

// Delete 从 WebDAV 服务器删除文件
func (w *WebDAV) Delete(pathKey string) error {
	fileKey := fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + pathKey
	return w.Client.Remove(fileKey)
}
