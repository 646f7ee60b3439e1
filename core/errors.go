package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 错误分类：
//   - NOT_FOUND：未知商品/用户，调用方按空结果处理，不是真正的错误
//   - UNAVAILABLE：目录为空导致向量器或相似度矩阵不可用（降级）
//   - INTERNAL_ERROR：打分过程中的意外故障，由编排层捕获并降级为热门兜底
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "UNAVAILABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "store", "recommend"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误链中是否有 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 依赖的结构不可用（降级）
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleCatalog   = "catalog"
	ModuleFeature   = "feature"
	ModuleStore     = "store"
	ModuleRecommend = "recommend"
)

var (
	// ErrVectorizerDisabled 表示目录为空或词表为空，内容向量器未构建
	ErrVectorizerDisabled = NewDomainError(ModuleFeature, ErrorCodeUnavailable, "feature: content vectorizer disabled")

	// ErrSimilarityDisabled 表示目录为空，相似度矩阵未构建
	ErrSimilarityDisabled = NewDomainError(ModuleFeature, ErrorCodeUnavailable, "feature: similarity matrix disabled")

	// ErrProductNotFound 表示商品 ID 不在当前快照中
	ErrProductNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: product not found")
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}
