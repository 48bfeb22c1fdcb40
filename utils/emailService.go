package utils

import (
	"basic/config"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a transactional email. SendGrid is preferred when an API
// key is configured, SMTP is the fallback, and with neither configured the
// message is logged only (mock mode for local development).
func SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.SendGridKey != "" {
		return sendViaSendGrid(to, subject, htmlBody)
	}

	if cfg.EmailSender == "" || cfg.EmailPassword == "" {
		log.Println("================ [MOCK EMAIL] ================")
		log.Printf("TO: %s", strings.Join(to, ","))
		log.Printf("SUBJECT: %s", subject)
		log.Println("==============================================")
		return nil
	}

	from := cfg.EmailSender

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Basic Studio <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, cfg.EmailPassword, cfg.SMTPHost)

	err := smtp.SendMail(cfg.SMTPHost+":"+cfg.SMTPPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email to %s: %v", strings.Join(to, ","), err)
		return err
	}
	log.Printf("Email sent to %s", strings.Join(to, ","))
	return nil
}

func sendViaSendGrid(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig

	sender := cfg.EmailSender
	if sender == "" {
		sender = "noreply@basic.com"
	}
	from := sgmail.NewEmail("Basic Studio", sender)

	for _, recipient := range to {
		message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", recipient), "", htmlBody)
		resp, err := sendgrid.NewSendClient(cfg.SendGridKey).Send(message)
		if err != nil {
			log.Printf("Error sending email via SendGrid to %s: %v", recipient, err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("SendGrid rejected email to %s: %d %s", recipient, resp.StatusCode, resp.Body)
			return fmt.Errorf("sendgrid status %d", resp.StatusCode)
		}
	}
	return nil
}

// HTML wrapper shared by all transactional emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f8f5f7; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background: linear-gradient(135deg, #d4a5a5 0%%, #8b6b8f 100%%); padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #232222; line-height: 1.6; }
			.content h2 { color: #232222; margin-top: 0; }
			.footer { background-color: #f8f5f7; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #232222; color: #FFFFFF; text-decoration: none; border-radius: 8px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #f8f5f7; padding: 15px; border-radius: 4px; border-left: 4px solid #8b6b8f; margin: 20px 0; }
			.code-box { background: #f8f5f7; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center; font-size: 28px; letter-spacing: 3px; color: #8b6b8f; font-weight: bold; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>BASIC STUDIO</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; Basic Studio. Todos os direitos reservados.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendInviteEmail sends the invite code and registration link. Callers treat
// delivery as best effort.
func SendInviteEmail(email, code string, courseNames []string) error {
	registerURL := fmt.Sprintf("%s/cadastro?code=%s", config.AppConfig.FrontendURL, code)

	courseList := ""
	if len(courseNames) > 0 {
		items := ""
		for _, name := range courseNames {
			items += fmt.Sprintf("<li>%s</li>", name)
		}
		courseList = fmt.Sprintf(`
			<div class="info-box">
				<strong>Cursos incluídos:</strong>
				<ul>%s</ul>
			</div>
		`, items)
	}

	subject := "Seu convite para Basic Studio chegou!"
	body := fmt.Sprintf(`
		<p>Você foi convidada para a <strong>Basic Studio</strong>!</p>
		<p>Use o código abaixo para criar a sua conta:</p>
		<div class="code-box">%s</div>
		%s
		<p style="text-align: center;"><a href="%s" class="btn">Criar Minha Conta</a></p>
		<p>Este convite é válido por 30 dias.</p>
	`, code, courseList, registerURL)

	return SendEmail([]string{email}, subject, getEmailTemplate("Convite Basic Studio", body))
}

// SendWelcomeEmail greets a newly registered student
func SendWelcomeEmail(email, name string) {
	subject := "Bem-vinda ao Basic Studio!"
	body := fmt.Sprintf(`
		<p>Olá <strong>%s</strong>,</p>
		<p>Estamos muito felizes em ter você conosco no <strong>Basic Studio</strong>!</p>
		<p>Agora você tem acesso aos seus cursos. Prepare-se para aprender técnicas incríveis e elevar suas habilidades!</p>
		<p style="text-align: center;"><a href="%s/meus-cursos" class="btn">Acessar Meus Cursos</a></p>
	`, name, config.AppConfig.FrontendURL)

	go SendEmail([]string{email}, subject, getEmailTemplate("Bem-vinda, "+name+"!", body))
}

// SendAdminWelcomeEmail delivers the generated credentials for a new admin
func SendAdminWelcomeEmail(email, name, password string) error {
	subject := "Sua conta de administrador - Basic Studio"
	body := fmt.Sprintf(`
		<p>Olá <strong>%s</strong>,</p>
		<p>Sua conta de administrador foi criada. Use as credenciais abaixo para o primeiro acesso:</p>
		<div class="info-box">
			<strong>Email:</strong> %s<br>
			<strong>Senha temporária:</strong> %s
		</div>
		<p>Por segurança, você deverá alterar a senha no primeiro login.</p>
		<p style="text-align: center;"><a href="%s/login" class="btn">Fazer Login</a></p>
	`, name, email, password, config.AppConfig.FrontendURL)

	return SendEmail([]string{email}, subject, getEmailTemplate("Conta de Administrador", body))
}

// SendPasswordResetEmail sends the reset link, valid for one hour
func SendPasswordResetEmail(email, name, token string) {
	resetURL := fmt.Sprintf("%s/redefinir-senha?token=%s", config.AppConfig.FrontendURL, token)

	subject := "Redefinição de Senha - Basic Studio"
	body := fmt.Sprintf(`
		<p>Olá <strong>%s</strong>,</p>
		<p>Recebemos sua solicitação para redefinir a senha da sua conta. Clique no botão abaixo para criar uma nova senha:</p>
		<p style="text-align: center;"><a href="%s" class="btn">Redefinir Minha Senha</a></p>
		<p>Este link é válido por <strong>1 hora</strong>. Se você não solicitou a redefinição de senha, ignore este email.</p>
		<p style="font-size: 13px; color: #999;">Se o botão não funcionar, copie e cole este link no seu navegador:<br>%s</p>
	`, name, resetURL, resetURL)

	go SendEmail([]string{email}, subject, getEmailTemplate("Recuperação de Senha", body))
}
