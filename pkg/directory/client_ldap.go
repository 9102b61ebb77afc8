package directory

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// search filters and attributes per the standard posix schema
const (
	groupFilter   = "(objectClass=posixGroup)"
	accountFilter = "(objectClass=posixAccount)"

	attrCN        = "cn"
	attrUID       = "uid"
	attrGIDNumber = "gidNumber"
	attrMemberUID = "memberUid"

	searchPageSize = 1000
)

// LDAPConfig holds everything needed to bind and query the directory
type LDAPConfig struct {
	Host          string `valid:"required"`
	Port          int    `valid:"range(1|65535)"`
	BindDN        string `valid:"-"`
	BindPassword  string `valid:"-"`
	GroupBaseDN   string `valid:"required"`
	AccountBaseDN string `valid:"required"`
}

// LDAPClient is the default directory client implementation
type LDAPClient struct {
	conn   *ldap.Conn
	config LDAPConfig
	logger *zap.Logger
}

// Connect dials and binds to the directory service
// NOTE: a failure here is fatal for the whole run
func Connect(config LDAPConfig) (*LDAPClient, error) {
	addr := fmt.Sprintf("ldap://%s:%d", config.Host, config.Port)

	conn, err := ldap.DialURL(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial directory service: %s", addr)
	}

	if config.BindDN != "" {
		if err := conn.Bind(config.BindDN, config.BindPassword); err != nil {
			conn.Close()
			return nil, errors.Wrapf(ErrBindFailed, "%s as %s: %s", addr, config.BindDN, err)
		}
	}

	return &LDAPClient{
		conn:   conn,
		config: config,
	}, nil
}

// SetLogger assigns a logger for this client
func (c *LDAPClient) SetLogger(logger *zap.Logger) error {
	if logger != nil {
		logger = logger.Named("[ldap]")
	}

	c.logger = logger

	return nil
}

// Logger returns primary logger if is set, otherwise initializing and returning
func (c *LDAPClient) Logger() *zap.Logger {
	if c.logger == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(fmt.Errorf("failed to initialize ldap client logger: %s", err))
		}

		c.logger = l
	}

	return c.logger
}

// Groups fetches every directory group with its direct member identities
func (c *LDAPClient) Groups(ctx context.Context) ([]Group, error) {
	l := c.Logger()

	req := ldap.NewSearchRequest(
		c.config.GroupBaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		groupFilter,
		[]string{attrCN, attrGIDNumber, attrMemberUID},
		nil,
	)

	res, err := c.conn.SearchWithPaging(req, searchPageSize)
	if err != nil {
		return nil, errors.Wrapf(err, "group search failed: host=%s base=%s filter=%s",
			c.config.Host, c.config.GroupBaseDN, groupFilter)
	}

	groups := make([]Group, 0, len(res.Entries))

	for _, entry := range res.Entries {
		name := entry.GetAttributeValue(attrCN)
		if name == "" {
			continue
		}

		gid, err := strconv.ParseUint(entry.GetAttributeValue(attrGIDNumber), 10, 32)
		if err != nil {
			// a group without a numeric id cannot carry primary
			// associations but its direct members still count
			l.Debug("group without a valid gidNumber", zap.String("group", name))
		}

		groups = append(groups, Group{
			Name:    name,
			GID:     uint32(gid),
			Members: entry.GetAttributeValues(attrMemberUID),
		})
	}

	l.Info("fetched directory groups", zap.Int("count", len(groups)))

	return groups, nil
}

// PrimaryGIDs fetches each active identity's primary group association.
// Identities without a parseable gidNumber are omitted, not reported.
func (c *LDAPClient) PrimaryGIDs(ctx context.Context) (map[string]uint32, error) {
	l := c.Logger()

	req := ldap.NewSearchRequest(
		c.config.AccountBaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		accountFilter,
		[]string{attrUID, attrGIDNumber},
		nil,
	)

	res, err := c.conn.SearchWithPaging(req, searchPageSize)
	if err != nil {
		return nil, errors.Wrapf(err, "account search failed: host=%s base=%s filter=%s",
			c.config.Host, c.config.AccountBaseDN, accountFilter)
	}

	primary := make(map[string]uint32, len(res.Entries))

	for _, entry := range res.Entries {
		uid := entry.GetAttributeValue(attrUID)
		if uid == "" {
			continue
		}

		gid, err := strconv.ParseUint(entry.GetAttributeValue(attrGIDNumber), 10, 32)
		if err != nil {
			continue
		}

		primary[uid] = uint32(gid)
	}

	l.Info("fetched primary group associations", zap.Int("count", len(primary)))

	return primary, nil
}

// Close unbinds from the directory service
func (c *LDAPClient) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}

	return nil
}
