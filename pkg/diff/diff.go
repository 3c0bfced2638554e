// Package diff 封装文本差异计算
package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// PatchText 计算 from 到 to 的补丁文本（URL 编码的标准 patch 格式）
func PatchText(from, to string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	patches := dmp.PatchMake(from, diffs)
	return dmp.PatchToText(patches)
}

// Apply 将补丁文本应用到指定内容
// 任一补丁块应用失败时 success 为 false
func Apply(patchText, content string) (result string, success bool, err error) {
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patchText)
	if err != nil {
		return "", false, err
	}
	result, applied := dmp.PatchApply(patches, content)
	success = true
	for _, ok := range applied {
		if !ok {
			success = false
			break
		}
	}
	return result, success, nil
}
