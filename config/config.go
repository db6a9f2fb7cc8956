package config

// Initialize 触发本包各文件的 init 方法加载
func Initialize() {}
