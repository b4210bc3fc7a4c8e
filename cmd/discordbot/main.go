/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/mikeb26/pdga-ratingest/internal/config"
	"github.com/mikeb26/pdga-ratingest/internal/logger"
	"github.com/mikeb26/pdga-ratingest/internal/service"
)

type TopLevelCommand string

const RatingCmd TopLevelCommand = "rating"

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

// followup edits a deferred interaction response once the real answer is
// ready. *discordgo.Session satisfies it.
type followup interface {
	InteractionResponseEdit(interaction *discordgo.Interaction,
		newresp *discordgo.WebhookEdit,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type bot struct {
	svc     *service.Service
	pubKey  ed25519.PublicKey
	session followup
	log     logrus.FieldLogger

	topLevelCmdHdlrs map[TopLevelCommand]CmdHandler
	ratingSubHdlrs   map[RatingSubCommand]CmdHandler
	// ctx for work that outlives a single interaction request
	ctx context.Context
}

func newBot(ctx context.Context, svc *service.Service, pubKey ed25519.PublicKey,
	session followup, log logrus.FieldLogger) *bot {

	b := &bot{
		svc:     svc,
		pubKey:  pubKey,
		session: session,
		log:     log,
		ctx:     ctx,
	}
	b.topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
		RatingCmd: b.ratingCmdHandler,
	}
	b.ratingSubHdlrs = map[RatingSubCommand]CmdHandler{
		RatingHelpCmd:     b.ratingHelpCmdHandler,
		RatingAboutCmd:    b.ratingAboutCmdHandler,
		RatingEstimateCmd: b.ratingEstimateCmdHandler,
		RatingCalendarCmd: b.ratingCalendarCmdHandler,
	}
	return b
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		b.log.Warnf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		b.log.Warnf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		b.log.Warnf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := b.dispatch(r.Context(), &inter)
	if resp == nil {
		b.log.Warnf("discordbot.int: unimplemented interaction type %v",
			inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		b.log.Errorf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		b.log.Warnf("discordbot.int: failed to write resp: err:%v", err)
	}
}

// dispatch returns nil for interaction types the bot does not handle.
func (b *bot) dispatch(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	switch inter.Type {
	case discordgo.InteractionPing:
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponsePong,
		}
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := b.topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			return &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: fmt.Sprintf("unknown command '%v'", name),
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			}
		}
		return hdlr(ctx, inter)
	default:
		return nil
	}
}

func registerSlashCommands(session *discordgo.Session, cfg config.Discord,
	log logrus.FieldLogger) {

	cmd := ratingCommand()
	if cfg.CmdID == "" {
		created, err := session.ApplicationCommandCreate(cfg.AppID, "", cmd)
		if err != nil {
			log.Errorf("discordbot.reg: failed to register %v: %v", cmd.Name,
				err)
			return
		}
		log.Infof("discordbot.reg: registered %v(cmdID:%v); set discord.cmd_id to keep it",
			created.Name, created.ID)
		return
	}

	updated, err := session.ApplicationCommandEdit(cfg.AppID, "", cfg.CmdID, cmd)
	if err != nil {
		log.Errorf("discordbot.reg: failed to update %v: %v", cmd.Name, err)
		return
	}
	log.Infof("discordbot.reg: updated %v(cmdID:%v)", updated.Name, updated.ID)
}

func main() {
	cfgPath := flag.String("config", "", "Path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	if cfg.Discord.Token == "" || cfg.Discord.PublicKey == "" ||
		cfg.Discord.AppID == "" {
		log.Fatalf("discordbot.main: discord token, public key and app id are required (PDGAEST_DISCORD_*)")
	}
	pubKeyBytes, err := hex.DecodeString(cfg.Discord.PublicKey)
	if err != nil {
		log.Fatalf("discordbot.main: failed to parse public key: %v", err)
	}
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("discordbot.main: failed to initialize discord client: %v",
			err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, closer, err := service.FromConfig(ctx, cfg, service.Options{}, log)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	defer closer()

	go registerSlashCommands(session, cfg.Discord, log)

	b := newBot(ctx, svc, ed25519.PublicKey(pubKeyBytes), session, log)
	mux := http.NewServeMux()
	mux.HandleFunc("/DiscordBot/Interaction", b.interactionHandler)
	srv := &http.Server{Addr: cfg.Discord.Listen, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Infof("discordbot.main: starting server on %v%v", hostname,
		cfg.Discord.Listen)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Errorf("discordbot.main: serve failed: %v", err)
	}

	log.Infof("discordbot.main: exiting")
}
