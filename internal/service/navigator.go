package service

// 页面跳转目标
const (
	// RouteResults 提交成功后的结果列表（固定分页参数）
	RouteResults = "dashboard?menu=results&page=1&limit=10&search="
	// RouteLogin 会话过期后的登录页
	RouteLogin = "/login"
	// RouteLabOrders 返回检验单列表
	RouteLabOrders = "/dashboard?menu=lab_orders&page=1&limit=10&search="
)

// Navigator 出站导航能力（由宿主环境注入）
type Navigator interface {
	Push(route string)
}

// Notifier 用户提示能力（对应前端 toast）
type Notifier interface {
	Success(message string)
	Error(message string)
}
