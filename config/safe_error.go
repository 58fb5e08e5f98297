package config

// SafeErrorMessage 根据运行模式决定返回的错误信息：
// release 模式返回 fallback，不向客户端暴露内部错误详情；
// 其他模式（含未初始化配置的开发环境）返回原始错误。
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
