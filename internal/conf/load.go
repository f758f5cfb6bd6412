package conf

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
)

// Load 读取配置文件或目录并扫描到 Bootstrap
// 返回的 cleanup 用于关闭配置源
func Load(path string) (*Bootstrap, func(), error) {
	c := config.New(
		config.WithSource(
			file.NewSource(path),
		),
	)
	if err := c.Load(); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("load config %s: %w", path, err)
	}

	var bc Bootstrap
	if err := c.Scan(&bc); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("scan config %s: %w", path, err)
	}
	return &bc, func() { c.Close() }, nil
}
