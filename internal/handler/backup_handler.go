package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/service"
)

// ExportBackup 导出整库快照到缓存目录并返回文件路径
// 调用方应立即把文件转交给系统分享机制，缓存目录可能随时被回收
func (a *API) ExportBackup(c *gin.Context) {
	path, err := a.exports.WriteSnapshotToFile()
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "导出备份失败")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"path": path})
}

// ValidateBackup 校验上传的备份文件并返回每张表的行数，不做任何写入
func (a *API) ValidateBackup(c *gin.Context) {
	raw, ok := readBackupBody(c)
	if !ok {
		return
	}

	counts, err := a.imports.Validate(raw)
	if err != nil {
		respondImportError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"counts": counts})
}

// ImportBackup 用上传的备份文件原子替换全部数据
func (a *API) ImportBackup(c *gin.Context) {
	raw, ok := readBackupBody(c)
	if !ok {
		return
	}

	counts, err := a.imports.Commit(raw)
	if err != nil {
		respondImportError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"counts": counts})
}

// readBackupBody 读取备份内容：优先取 multipart 的 file 字段，否则取请求体
func readBackupBody(c *gin.Context) ([]byte, bool) {
	if file, err := c.FormFile("file"); err == nil {
		opened, err := file.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "无法读取上传文件")
			return nil, false
		}
		defer opened.Close()

		raw, err := io.ReadAll(opened)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无法读取上传文件")
			return nil, false
		}
		return raw, true
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "无法读取请求体")
		return nil, false
	}
	return raw, true
}

// respondImportError 把导入错误映射到对应状态码：
// 文件/结构/版本错误归为 400（提交前即检出，数据未动），
// 其余视为存储错误，事务已回滚，原数据保持不变。
func respondImportError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidFile) ||
		errors.Is(err, service.ErrMalformedEnvelope) ||
		errors.Is(err, service.ErrUnsupportedVersion) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, "导入失败，原有数据未被改动")
}
