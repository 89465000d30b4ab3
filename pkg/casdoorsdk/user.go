package casdoorsdk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// User is a Casdoor account.
type User struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	UpdatedTime string `json:"updatedTime,omitempty"`
	DeletedTime string `json:"deletedTime,omitempty"`

	ID                string   `json:"id,omitempty"`
	ExternalID        string   `json:"externalId,omitempty"`
	Type              string   `json:"type,omitempty"`
	Password          string   `json:"password,omitempty"`
	PasswordSalt      string   `json:"passwordSalt,omitempty"`
	PasswordType      string   `json:"passwordType,omitempty"`
	DisplayName       string   `json:"displayName,omitempty"`
	FirstName         string   `json:"firstName,omitempty"`
	LastName          string   `json:"lastName,omitempty"`
	Avatar            string   `json:"avatar,omitempty"`
	AvatarType        string   `json:"avatarType,omitempty"`
	PermanentAvatar   string   `json:"permanentAvatar,omitempty"`
	Email             string   `json:"email,omitempty"`
	EmailVerified     bool     `json:"emailVerified,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	CountryCode       string   `json:"countryCode,omitempty"`
	Region            string   `json:"region,omitempty"`
	Location          string   `json:"location,omitempty"`
	Address           []string `json:"address,omitempty"`
	Affiliation       string   `json:"affiliation,omitempty"`
	Title             string   `json:"title,omitempty"`
	IDCardType        string   `json:"idCardType,omitempty"`
	IDCard            string   `json:"idCard,omitempty"`
	Homepage          string   `json:"homepage,omitempty"`
	Bio               string   `json:"bio,omitempty"`
	Tag               string   `json:"tag,omitempty"`
	Language          string   `json:"language,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	Birthday          string   `json:"birthday,omitempty"`
	Education         string   `json:"education,omitempty"`
	Score             int      `json:"score,omitempty"`
	Karma             int      `json:"karma,omitempty"`
	Ranking           int      `json:"ranking,omitempty"`
	Balance           float64  `json:"balance,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	IsDefaultAvatar   bool     `json:"isDefaultAvatar,omitempty"`
	IsOnline          bool     `json:"isOnline,omitempty"`
	IsAdmin           bool     `json:"isAdmin,omitempty"`
	IsForbidden       bool     `json:"isForbidden,omitempty"`
	IsDeleted         bool     `json:"isDeleted,omitempty"`
	SignupApplication string   `json:"signupApplication,omitempty"`
	Hash              string   `json:"hash,omitempty"`
	PreHash           string   `json:"preHash,omitempty"`
	AccessKey         string   `json:"accessKey,omitempty"`
	AccessSecret      string   `json:"accessSecret,omitempty"`
	AccessToken       string   `json:"accessToken,omitempty"`

	CreatedIP      string `json:"createdIp,omitempty"`
	LastSigninTime string `json:"lastSigninTime,omitempty"`
	LastSigninIP   string `json:"lastSigninIp,omitempty"`

	Github          string `json:"github,omitempty"`
	Google          string `json:"google,omitempty"`
	QQ              string `json:"qq,omitempty"`
	WeChat          string `json:"weChat,omitempty"`
	Facebook        string `json:"facebook,omitempty"`
	DingTalk        string `json:"dingTalk,omitempty"`
	Weibo           string `json:"weibo,omitempty"`
	Gitee           string `json:"gitee,omitempty"`
	LinkedIn        string `json:"linkedIn,omitempty"`
	Wecom           string `json:"wecom,omitempty"`
	Lark            string `json:"lark,omitempty"`
	GitLab          string `json:"gitlab,omitempty"`
	ADFS            string `json:"adfs,omitempty"`
	Baidu           string `json:"baidu,omitempty"`
	Alipay          string `json:"alipay,omitempty"`
	Casdoor         string `json:"casdoor,omitempty"`
	Infoflow        string `json:"infoflow,omitempty"`
	Apple           string `json:"apple,omitempty"`
	AzureAD         string `json:"azureAD,omitempty"`
	AzureADB2c      string `json:"azureADB2c,omitempty"`
	Slack           string `json:"slack,omitempty"`
	Steam           string `json:"steam,omitempty"`
	Bilibili        string `json:"bilibili,omitempty"`
	Okta            string `json:"okta,omitempty"`
	Douyin          string `json:"douyin,omitempty"`
	Line            string `json:"line,omitempty"`
	Amazon          string `json:"amazon,omitempty"`
	Auth0           string `json:"auth0,omitempty"`
	BattleNet       string `json:"battleNet,omitempty"`
	Bitbucket       string `json:"bitbucket,omitempty"`
	Box             string `json:"box,omitempty"`
	CloudFoundry    string `json:"cloudFoundry,omitempty"`
	Dailymotion     string `json:"dailymotion,omitempty"`
	Deezer          string `json:"deezer,omitempty"`
	DigitalOcean    string `json:"digitalOcean,omitempty"`
	Discord         string `json:"discord,omitempty"`
	Dropbox         string `json:"dropbox,omitempty"`
	EveOnline       string `json:"eveOnline,omitempty"`
	Fitbit          string `json:"fitbit,omitempty"`
	Gitea           string `json:"gitea,omitempty"`
	Heroku          string `json:"heroku,omitempty"`
	InfluxCloud     string `json:"influxCloud,omitempty"`
	Instagram       string `json:"instagram,omitempty"`
	Intercom        string `json:"intercom,omitempty"`
	Kakao           string `json:"kakao,omitempty"`
	Lastfm          string `json:"lastfm,omitempty"`
	Mailru          string `json:"mailru,omitempty"`
	Meetup          string `json:"meetup,omitempty"`
	MicrosoftOnline string `json:"microsoftOnline,omitempty"`
	Naver           string `json:"naver,omitempty"`
	Nextcloud       string `json:"nextcloud,omitempty"`
	OneDrive        string `json:"oneDrive,omitempty"`
	Oura            string `json:"oura,omitempty"`
	Patreon         string `json:"patreon,omitempty"`
	Paypal          string `json:"paypal,omitempty"`
	SalesForce      string `json:"salesForce,omitempty"`
	Shopify         string `json:"shopify,omitempty"`
	Soundcloud      string `json:"soundcloud,omitempty"`
	Spotify         string `json:"spotify,omitempty"`
	Strava          string `json:"strava,omitempty"`
	Stripe          string `json:"stripe,omitempty"`
	Tiktok          string `json:"tiktok,omitempty"`
	Tumblr          string `json:"tumblr,omitempty"`
	Twitch          string `json:"twitch,omitempty"`
	Twitter         string `json:"twitter,omitempty"`
	Typetalk        string `json:"typetalk,omitempty"`
	Uber            string `json:"uber,omitempty"`
	Vk              string `json:"vk,omitempty"`
	Wepay           string `json:"wepay,omitempty"`
	Xero            string `json:"xero,omitempty"`
	Yahoo           string `json:"yahoo,omitempty"`
	Yammer          string `json:"yammer,omitempty"`
	Yandex          string `json:"yandex,omitempty"`
	Zoom            string `json:"zoom,omitempty"`
	MetaMask        string `json:"metaMask,omitempty"`
	Web3Onboard     string `json:"web3Onboard,omitempty"`
	Custom          string `json:"custom,omitempty"`

	PreferredMfaType string      `json:"preferredMfaType,omitempty"`
	RecoveryCodes    []string    `json:"recoveryCodes,omitempty"`
	TotpSecret       string      `json:"totpSecret,omitempty"`
	MfaPhoneEnabled  bool        `json:"mfaPhoneEnabled,omitempty"`
	MfaEmailEnabled  bool        `json:"mfaEmailEnabled,omitempty"`
	MultiFactorAuths []*MfaProps `json:"multiFactorAuths,omitempty"`
	Invitation       string      `json:"invitation,omitempty"`
	InvitationCode   string      `json:"invitationCode,omitempty"`
	FaceIDs          []*FaceID   `json:"faceIds,omitempty"`

	LDAP       string            `json:"ldap,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`

	Roles       []*Role       `json:"roles,omitempty"`
	Permissions []*Permission `json:"permissions,omitempty"`
	Groups      []string      `json:"groups,omitempty"`

	LastSigninWrongTime string `json:"lastSigninWrongTime,omitempty"`
	SigninWrongTimes    int    `json:"signinWrongTimes,omitempty"`

	ManagedAccounts    []ManagedAccount `json:"managedAccounts,omitempty"`
	MfaAccounts        []MfaAccount     `json:"mfaAccounts,omitempty"`
	NeedUpdatePassword bool             `json:"needUpdatePassword,omitempty"`
	IPWhitelist        string           `json:"ipWhitelist,omitempty"`
}

// ManagedAccount is a credential the user keeps for another application.
type ManagedAccount struct {
	Application string `json:"application,omitempty"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	SigninURL   string `json:"signinUrl,omitempty"`
}

// MfaAccount is an authenticator entry stored on the user.
type MfaAccount struct {
	AccountName string `json:"accountName"`
	Issuer      string `json:"issuer"`
	SecretKey   string `json:"secretKey"`
}

// FaceID is an enrolled face signature.
type FaceID struct {
	Name       string    `json:"name"`
	FaceIDData []float64 `json:"faceIdData"`
}

// SetPassword is the input to Client.SetPassword.
type SetPassword struct {
	Owner       string
	Name        string
	OldPassword string
	NewPassword string
}

func (u *User) ident() (string, string) { return u.Owner, u.Name }
func (u *User) setOwner(owner string) { u.Owner = owner }

var userDescriptor = descriptor{kind: "user", plural: "users"}

func (c *Client) users() collection[User, *User] {
	return newCollection[User](c, userDescriptor)
}

// GetUsers lists the organization's users.
func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	return c.users().list(ctx, nil)
}

// GetUser returns the named user, or nil if it doesn't exist.
func (c *Client) GetUser(ctx context.Context, name string) (*User, error) {
	return c.users().get(ctx, name)
}

// GetUserCount counts the organization's users. With isOnline set, only
// users with an active session are counted.
func (c *Client) GetUserCount(ctx context.Context, isOnline bool) (int, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}

	q := url.Values{
		"owner":    {c.cfg.OrganizationName},
		"isOnline": {strconv.FormatBool(isOnline)},
	}

	var count int
	if _, err := c.get(ctx, "get-user-count", q, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Client) AddUser(ctx context.Context, user *User) (bool, error) {
	return c.users().add(ctx, user)
}

func (c *Client) UpdateUser(ctx context.Context, user *User) (bool, error) {
	return c.users().update(ctx, user)
}

func (c *Client) DeleteUser(ctx context.Context, user *User) (bool, error) {
	return c.users().delete(ctx, user)
}

// SetPassword changes a user's password. OldPassword may be empty when the
// caller is an administrator.
func (c *Client) SetPassword(ctx context.Context, req SetPassword) error {
	fields := []formField{
		{"userOwner", req.Owner},
		{"userName", req.Name},
		{"oldPassword", req.OldPassword},
		{"newPassword", req.NewPassword},
	}

	if _, err := c.postForm(ctx, "set-password", nil, fields, nil, nil); err != nil {
		return fmt.Errorf("set password for %s/%s: %w", req.Owner, req.Name, err)
	}
	return nil
}
