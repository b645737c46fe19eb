package core

// Token NFT本体：所有者可变，创建者与元数据铸造后不可变
type Token struct {
	Owner    string
	Creator  string
	URI      string
	Category string
}

// Metadata token元数据视图
type Metadata struct {
	Creator  string
	URI      string
	Category string
}

// Registry token所有权登记，ID从1开始单调递增且永不复用
type Registry struct {
	admin  *Admin
	nextID uint64
	tokens map[uint64]*Token
}

func newRegistry(admin *Admin) *Registry {
	return &Registry{
		admin:  admin,
		nextID: 1,
		tokens: make(map[uint64]*Token),
	}
}

// Mint 铸造新token，所有者与创建者均为调用者
func (r *Registry) Mint(uri, category, caller string) (uint64, error) {
	if err := r.admin.checkRunning(); err != nil {
		return 0, err
	}
	id := r.nextID
	r.nextID++
	r.tokens[id] = &Token{
		Owner:    caller,
		Creator:  caller,
		URI:      uri,
		Category: category,
	}
	return id, nil
}

// Transfer 转移token所有权，仅当前所有者可调用
func (r *Registry) Transfer(tokenID uint64, newOwner, caller string) error {
	if err := r.admin.checkRunning(); err != nil {
		return err
	}
	token, ok := r.tokens[tokenID]
	if !ok {
		return fail(CodeTokenNotFound, "token does not exist")
	}
	if token.Owner != caller {
		return fail(CodeNotTokenOwner, "caller does not own the token")
	}
	token.Owner = newOwner
	return nil
}

// Owner 查询token所有者
func (r *Registry) Owner(tokenID uint64) (string, bool) {
	token, ok := r.tokens[tokenID]
	if !ok {
		return "", false
	}
	return token.Owner, true
}

// Metadata 查询token元数据
func (r *Registry) Metadata(tokenID uint64) (Metadata, bool) {
	token, ok := r.tokens[tokenID]
	if !ok {
		return Metadata{}, false
	}
	return Metadata{Creator: token.Creator, URI: token.URI, Category: token.Category}, true
}

// Size 已铸造的token数量
func (r *Registry) Size() int {
	return len(r.tokens)
}

// reassign 内部所有权变更，用于购买与NFT捐赠的结算路径，
// 调用方负责在此之前完成全部前置校验
func (r *Registry) reassign(tokenID uint64, newOwner string) {
	if token, ok := r.tokens[tokenID]; ok {
		token.Owner = newOwner
	}
}
