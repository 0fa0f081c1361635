// Package compose transforma o representante escolhido em algo que o usuário
// pode enviar: destinatário (com endereço deduzido quando falta), carta a partir
// de template e links mailto/Gmail/Outlook.
//
// Nada aqui decide qual representante usar; isso é do pacote representative.
package compose
