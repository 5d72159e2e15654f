// Package model defines the DTOs exchanged with the Teletela backend and the
// locally persisted shapes. JSON tags follow the backend's (Portuguese) wire
// names, including its historical misspellings, since the backend is external.
package model

import "time"

// Role is a profile role carried in the token's role claim.
type Role string

const (
	RoleAdmin    Role = "adm"
	RoleCustomer Role = "cliente"
)

// Profile is the logged-in user as returned by POST /auth and GET /usuarios/....
type Profile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      Role   `json:"perfil"`
	CPF       string `json:"cpf"`
	Name      string `json:"nome,omitempty"`
	Surname   string `json:"sobrenome,omitempty"`
	Email     string `json:"email,omitempty"`
	BirthDate string `json:"dataNascimento,omitempty"`
	Phone     *Phone `json:"telefone,omitempty"`
}

// Phone is a structured phone number attached to a profile.
type Phone struct {
	ID     int64  `json:"id,omitempty"`
	DDD    string `json:"ddd"`
	Number string `json:"numero"`
}

// TokenClaims is the normalized view of the bearer token's claims. It is built
// once at the session boundary; any shape mismatch during decoding yields a nil
// claims value, never a partially trusted one.
type TokenClaims struct {
	Subject   string
	Roles     []Role
	ExpiresAt time.Time
}

// HasRole reports membership in the role claim.
func (c *TokenClaims) HasRole(role Role) bool {
	if c == nil {
		return false
	}
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// LoginRequest is the body of POST /auth.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

// RegisterRequest creates a customer account (POST /usuarios).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	CPF      string `json:"cpf" validate:"required,len=11,numeric"`
	Password string `json:"senha" validate:"required,min=6"`
}

// RecoverPasswordRequest resets a forgotten password (PUT /usuarios/recuperar-senha).
type RecoverPasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	CPF         string `json:"cpf" validate:"required,len=11,numeric"`
	NewPassword string `json:"novaSenha" validate:"required,min=6"`
}

// PersonalDataRequest updates the profile section (PATCH /usuarios/dados-pessoais).
type PersonalDataRequest struct {
	Name      string `json:"nome" validate:"required"`
	Surname   string `json:"sobrenome" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	BirthDate string `json:"dataNascimento" validate:"required,datetime=2006-01-02"`
	Phone     *Phone `json:"telefoneRequestDTO,omitempty"`
}

// CredentialsRequest changes username/password (PATCH /usuarios/atualizar-credenciais).
type CredentialsRequest struct {
	Username    string `json:"username" validate:"required"`
	OldPassword string `json:"senhaAtual" validate:"required"`
	NewPassword string `json:"novaSenha" validate:"required,min=6"`
}

// ---- catalog ----

// Resolution is a television resolution option (e.g. 4K, 3840x2160).
type Resolution struct {
	ID     int64  `json:"id"`
	Name   string `json:"nome"`
	Pixels string `json:"pixels"`
}

// ScreenType is a panel technology option (LED, OLED, QLED...).
type ScreenType struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// Dimension holds the physical measures of a television.
type Dimension struct {
	ID     int64   `json:"id"`
	Width  float64 `json:"comprimento"`
	Height float64 `json:"altura"`
	Inches float64 `json:"polegada"`
}

// Television is the catalog product record.
type Television struct {
	ID          int64      `json:"idTelevisao"`
	Brand       string     `json:"marca"`
	Model       string     `json:"modelo"`
	Description string     `json:"descricao"`
	Resolution  Resolution `json:"resolucao"`
	ScreenType  ScreenType `json:"tipoTela"`
	Dimension   Dimension  `json:"dimensao"`
	Price       float64    `json:"valor"`
	Stock       int        `json:"estoque"`
	ImageName   string     `json:"nomeImagem"`
	Active      bool       `json:"ativo"`
	ModelID     int64      `json:"idModelo"`
	BrandID     int64      `json:"idMarca"`
}

// TelevisionRequest creates or updates a television (POST /televisoes).
type TelevisionRequest struct {
	ModelID      int64   `json:"idModelo" validate:"required,gt=0"`
	ResolutionID int64   `json:"idTipoResolucao" validate:"required,gt=0"`
	ScreenTypeID int64   `json:"idTipoTela" validate:"required,gt=0"`
	Price        float64 `json:"valor" validate:"required,gt=0"`
	Stock        int     `json:"estoque" validate:"gte=0"`
	Description  string  `json:"descricao" validate:"required"`
	Height       float64 `json:"altura" validate:"required,gt=0"`
	Width        float64 `json:"largura" validate:"required,gt=0"`
	Inches       float64 `json:"polegada" validate:"required,gt=0"`
}

// Brand is a television brand (marca).
type Brand struct {
	ID     int64  `json:"id"`
	Name   string `json:"nomeMarca"`
	Active bool   `json:"ativo"`
}

// BrandRequest creates or updates a brand.
type BrandRequest struct {
	Name string `json:"nomeMarca" validate:"required"`
}

// TVModel is a television model line belonging to a brand (modelo).
type TVModel struct {
	ID     int64  `json:"id"`
	Name   string `json:"modelo"`
	Brand  Brand  `json:"marca"`
	Active bool   `json:"ativo"`
}

// TVModelRequest creates or updates a model line.
type TVModelRequest struct {
	Name    string `json:"modelo" validate:"required"`
	BrandID int64  `json:"idMarca" validate:"required,gt=0"`
}

// Manufacturer is a manufacturing company (fabricante).
type Manufacturer struct {
	ID     int64  `json:"id"`
	Name   string `json:"nome"`
	CNPJ   string `json:"cnpj"`
	Active bool   `json:"ativo"`
}

// ManufacturerRequest creates or updates a manufacturer.
type ManufacturerRequest struct {
	Name string `json:"nome" validate:"required"`
	CNPJ string `json:"cnpj" validate:"required,len=14,numeric"`
}

// Supplier is a supplying company (fornecedor).
type Supplier struct {
	ID     int64  `json:"id"`
	Name   string `json:"nome"`
	CNPJ   string `json:"cnpj"`
	Email  string `json:"email"`
	Active bool   `json:"ativo"`
}

// SupplierRequest creates or updates a supplier.
type SupplierRequest struct {
	Name  string `json:"nome" validate:"required"`
	CNPJ  string `json:"cnpj" validate:"required,len=14,numeric"`
	Email string `json:"email" validate:"required,email"`
}

// Characteristic is a general-characteristics record attached to televisions
// (operating system, ports, smart features).
type Characteristic struct {
	ID              int64  `json:"id"`
	Name            string `json:"nome"`
	OperatingSystem string `json:"sistemaOperacional"`
	HDMIPorts       int    `json:"quantidadeHDMI"`
	USBPorts        int    `json:"quantidadeUSB"`
	SmartTV         bool   `json:"smartTV"`
}

// CharacteristicRequest creates or updates a characteristics record.
type CharacteristicRequest struct {
	Name            string `json:"nome" validate:"required"`
	OperatingSystem string `json:"sistemaOperacional" validate:"required"`
	HDMIPorts       int    `json:"quantidadeHDMI" validate:"gte=0"`
	USBPorts        int    `json:"quantidadeUSB" validate:"gte=0"`
	SmartTV         bool   `json:"smartTV"`
}

// Employee is a back-office employee record (funcionario).
type Employee struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"nome"`
	CPF      string `json:"cpf"`
	Surname  string `json:"sobrenome"`
	Email    string `json:"email"`
}

// EmployeeRequest creates an employee with their initial credentials.
type EmployeeRequest struct {
	Name     string `json:"nome" validate:"required"`
	CPF      string `json:"cpf" validate:"required,len=11,numeric"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"senha" validate:"required,min=6"`
	Surname  string `json:"sobrenome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// EmployeeDataUpdate changes an employee's basic data; the target's current
// password authorizes the change server-side.
type EmployeeDataUpdate struct {
	EmployeeID     int64  `json:"idFuncionario" validate:"required,gt=0"`
	Name           string `json:"nome" validate:"required"`
	CPF            string `json:"cpf" validate:"required,len=11,numeric"`
	Surname        string `json:"sobrenome" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	TargetPassword string `json:"senhaAtualAlvo" validate:"required"`
}

// EmployeeDeleteRequest removes an employee. The target's password travels in
// the body and in the X-Password header.
type EmployeeDeleteRequest struct {
	EmployeeID     int64  `json:"idFuncionario" validate:"required,gt=0"`
	TargetPassword string `json:"senhaAlvo" validate:"required"`
}

// ---- addresses ----

// Municipality is a city with its state, as nested in address responses.
type Municipality struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	State string `json:"estado,omitempty"`
}

// MunicipalityCheckRequest looks up a city by name/UF, creating it when absent.
type MunicipalityCheckRequest struct {
	City  string `json:"nomeCidade" validate:"required"`
	State string `json:"uf" validate:"required,len=2"`
}

// Address is a delivery address owned by the logged-in user.
type Address struct {
	ID           int64        `json:"idEndereco"`
	CEP          string       `json:"cep"`
	District     string       `json:"bairro"`
	Number       int          `json:"numero"`
	Complement   string       `json:"complemento"`
	Municipality Municipality `json:"municipio"`
	Owner        string       `json:"proprietário"` // accented on the wire, kept as-is
}

// AddressRequest creates or updates an address.
type AddressRequest struct {
	CEP            string `json:"cep" validate:"required,len=8,numeric"`
	District       string `json:"bairro" validate:"required"`
	Number         int    `json:"numero" validate:"required,gt=0"`
	Complement     string `json:"complemento"`
	MunicipalityID int64  `json:"idMunicipio" validate:"required,gt=0"`
}

// CEPResult is the ViaCEP lookup payload used to prefill address forms.
type CEPResult struct {
	CEP      string `json:"cep"`
	Street   string `json:"logradouro"`
	District string `json:"bairro"`
	City     string `json:"localidade"`
	State    string `json:"uf"`
	NotFound bool   `json:"erro,omitempty"`
}

// ---- cart ----

// CartItem is a single cart line. The JSON shape matches the browser client's
// persisted format so a stored cart remains readable across implementations.
type CartItem struct {
	ID        int64   `json:"id"`
	Name      string  `json:"nome"`
	UnitPrice float64 `json:"preco"`
	Quantity  int     `json:"quantidade"`
	Image     string  `json:"imagem"`
	Stock     int     `json:"estoque"`
}

// Subtotal is the line total.
func (i CartItem) Subtotal() float64 { return i.UnitPrice * float64(i.Quantity) }

// ---- orders & payments ----

// OrderItemRequest is one line of an order draft. The quantity tag keeps the
// backend's misspelling.
type OrderItemRequest struct {
	TelevisionID int64 `json:"idTelevisao" validate:"required,gt=0"`
	Quantity     int   `json:"quatidade" validate:"required,gt=0"`
}

// OrderRequest creates an order (POST /pedidos/criar-pedido).
type OrderRequest struct {
	AddressID   int64              `json:"idEndereco" validate:"required,gt=0"`
	Items       []OrderItemRequest `json:"itens" validate:"required,min=1,dive"`
	Total       float64            `json:"valorTotal" validate:"required,gt=0"`
	ShippingFee float64            `json:"valorFrete" validate:"gte=0"`
}

// OrderUpdateRequest changes the address (and optionally status) of an order.
type OrderUpdateRequest struct {
	AddressID int64   `json:"idEndereco" validate:"required,gt=0"`
	Status    *string `json:"status,omitempty"`
}

// OrderStatus is the backend's object-shaped status enum.
type OrderStatus struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// DeliveryAddress is the address snapshot attached to an order response.
type DeliveryAddress struct {
	ID         int64  `json:"id"`
	CEP        string `json:"cep"`
	District   string `json:"bairro"`
	Complement string `json:"complemento"`
	Number     int    `json:"numero"`
	City       string `json:"municipio"`
	Username   string `json:"username"`
}

// OrderItem is one fulfilled line of a placed order.
type OrderItem struct {
	ID         int64      `json:"id"`
	Television Television `json:"televisao"`
	Quantity   int        `json:"quantidadeTelevisao"`
	Total      float64    `json:"total"`
}

// Order is a placed order as returned by the backend.
type Order struct {
	ID       int64           `json:"id"`
	PlacedAt string          `json:"dataPedido"`
	Total    float64         `json:"valorTotal"`
	Status   OrderStatus     `json:"statusPedido"`
	Address  DeliveryAddress `json:"enderecoEntrega"`
	Items    []OrderItem     `json:"itens"`
	BoughtBy string          `json:"comprador"`
}

// CardRequest submits card payment data. Expiry is an ISO date (first of month).
type CardRequest struct {
	Holder string `json:"titular" validate:"required"`
	Number string `json:"numero" validate:"required,credit_card"`
	CVV    string `json:"cvv" validate:"required,len=3,numeric"`
	Expiry string `json:"dataValidade" validate:"required,datetime=2006-01-02"`
}

// PixCharge is the payload returned by the PIX initiation call.
type PixCharge struct {
	ID  int64  `json:"id"`
	Key string `json:"chaveDestinatario"`
}

// BoletoCharge is the payload returned by the boleto initiation call.
type BoletoCharge struct {
	ID     int64  `json:"id"`
	Number string `json:"numeroBoleto"`
}
